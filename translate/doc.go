// Package translate converts parsed query node lists into bleve queries.
//
// It is the seam between the normalization layer and a search backend:
// the parser produces an ordered list of terms and operators, and the
// translator folds that list into a bleve boolean query tree.
//
//	tr := translate.New(translate.Options{})
//	q, err := tr.TranslateString(`title:guide AND galaxy^2`)
//	// q is a bleve query: +title:"guide" "galaxy"^2
//
// # Mapping
//
// Terms become match-phrase queries carrying their field and boost.
// A term with a proximity modifier becomes a fuzzy query. A bracketed
// term is re-parsed and translated recursively, producing a nested
// boolean query. Connectives route the following clause: AND/&& into
// must, OR/|| into should, NOT/! into must-not; AND also promotes the
// preceding clause from should to must.
//
// The translator builds query values only; it never executes a search.
//
// # Schema introspection
//
// [FieldsFromIndex] lists the indexed fields of a bleve index, which is
// how the parser's strict-mode allow-list is normally supplied:
//
//	fields, _ := translate.FieldsFromIndex(idx)
//	p := parser.New(parser.Options{Strict: true, AllowedFields: fields})
//
// # Thread Safety
//
// A Translator is immutable after New and safe for concurrent use.
package translate
