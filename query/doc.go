// Package query defines the node model for Solr-style search queries.
//
// A parsed query is an ordered list of nodes alternating between [Term]
// (one field:value clause with optional boost, proximity and bracket
// decorations) and [Operator] (a boolean connective). Grouping has no node
// type of its own: a Term whose opener is set represents a bracketed
// clause whose value is the serialized form of the inner query.
//
// # Serialization
//
// Every node renders itself back to canonical wire syntax via String.
// [Join] renders a whole node list:
//
//	t := query.NewTerm()
//	t.SetField("title")
//	_ = t.PushValue("go")
//	_ = t.SetBoost("2")
//
//	query.Join([]query.Node{t, query.OpAnd, other})
//	// title:go^2 AND ...
//
// Terms whose value is empty serialize to "" and are skipped by Join;
// callers use this to drop degenerate clauses.
//
// # Normalization
//
// [Optimize] is the cleanup pass run after parsing: it removes terms with
// an empty serialized form and collapses runs of consecutive equal
// operators into one.
//
// # Thread Safety
//
// Operator values are immutable. A Term is a mutable builder and must not
// be shared across goroutines while it is being populated; once built it
// is only read.
package query
