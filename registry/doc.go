// Package registry exposes query normalization as MCP tools.
//
// It wraps the parser and translator behind a small JSON-RPC 2.0 surface
// speaking the Model Context Protocol, so agent hosts can call the
// normalization layer like any other tool server.
//
// # Built-in tools
//
//   - parse_query: parse a raw query and return its node breakdown plus
//     the canonical form
//   - normalize_query: parse, optimize and re-serialize a raw query
//   - translate_query: parse a raw query and return the bleve query tree
//
// Additional tools can be attached with Register.
//
// # Serving
//
//	r := registry.New(registry.Config{
//	    ParserOptions: parser.Options{Strict: true, AllowedFields: fields},
//	})
//	err := registry.ServeStdio(ctx, r)
//
// ServeHTTP returns an http.Handler for the same request surface over
// POSTed JSON-RPC bodies.
//
// # Thread Safety
//
// All Registry methods are safe for concurrent use.
package registry
