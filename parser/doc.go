// Package parser turns a Solr-style query string into an ordered list of
// query nodes.
//
// The input syntax is the usual free-text search grammar: field:value
// clauses, quoted phrases, boolean connectives (AND, OR, NOT, &&, ||, !),
// bracket groups with ( ), { } or [ ], relevance boosts (^2.5) and
// proximity modifiers (~3). The output is a []query.Node holding terms and
// operators in source order; query.Join renders it back to canonical wire
// syntax.
//
// # Usage
//
//	p := parser.New(parser.Options{})
//	nodes, err := p.Parse(`title:foo AND bar^2`)
//	if err != nil {
//	    // ...
//	}
//	fmt.Println(query.Join(nodes)) // title:foo AND bar^2
//
// Normalize is the one-call canonicalization path: parse, run the
// query.Optimize cleanup, and join.
//
// # Strict mode
//
// With Options.Strict a field name outside Options.AllowedFields rejects
// the whole parse, and an unterminated quote is an error. Permissive mode
// (the default) accepts any field name and auto-closes an open quote at
// end of input. Malformed boosts and unbalanced brackets are errors in
// both modes. A failing parse never returns a partial node list.
//
// Strict field validation applies inside bracket groups too: sub-parses
// run with the same configuration as the top level.
//
// # Grouping
//
// A bracket group becomes a single term whose opener records the bracket
// kind and whose value is the serialized form of the recursively parsed
// inner content. Nesting depth is capped by Options.MaxDepth; exceeding
// it fails with ErrMaxDepth.
//
// # Thread Safety
//
// A Parser carries only immutable configuration; scan state lives on the
// stack of each call. Parse, ParseInto and Normalize are safe for
// concurrent use from multiple goroutines.
package parser
