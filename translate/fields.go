package translate

import (
	"fmt"
	"sort"
	"strings"

	bleve "github.com/blevesearch/bleve/v2"

	"github.com/jonwraymond/solrq/parser"
)

// FieldsFromIndex lists the indexed fields of idx, sorted, with bleve's
// internal fields (_id, _all) filtered out. The result is what strict
// parsers take as their allow-list.
func FieldsFromIndex(idx bleve.Index) ([]string, error) {
	fields, err := idx.Fields()
	if err != nil {
		return nil, fmt.Errorf("index fields: %w", err)
	}
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if strings.HasPrefix(f, "_") {
			continue
		}
		out = append(out, f)
	}
	sort.Strings(out)
	return out, nil
}

// ParserFromIndex builds a parser whose allow-list is introspected from
// the index schema. Fields already present in opts.AllowedFields are
// replaced.
func ParserFromIndex(idx bleve.Index, opts parser.Options) (*parser.Parser, error) {
	fields, err := FieldsFromIndex(idx)
	if err != nil {
		return nil, err
	}
	opts.AllowedFields = fields
	return parser.New(opts), nil
}
