package translate

import (
	"strconv"

	bquery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/jonwraymond/solrq/parser"
	"github.com/jonwraymond/solrq/query"
)

// Options configures a Translator.
type Options struct {
	// Parser resolves bracketed sub-queries. If nil, a permissive parser
	// with default options is used.
	Parser *parser.Parser

	// DefaultField is applied to terms without an explicit field. Empty
	// leaves field routing to the index default.
	DefaultField string
}

// Translator folds query node lists into bleve query trees.
type Translator struct {
	p            *parser.Parser
	defaultField string
}

// New creates a Translator with the given options.
func New(opts Options) *Translator {
	p := opts.Parser
	if p == nil {
		p = parser.New(parser.Options{})
	}
	return &Translator{p: p, defaultField: opts.DefaultField}
}

// TranslateString parses, optimizes and translates text in one call.
func (tr *Translator) TranslateString(text string) (bquery.Query, error) {
	nodes, err := tr.p.Parse(text)
	if err != nil {
		return nil, err
	}
	return tr.Translate(query.Optimize(nodes))
}

// Translate converts a node list into a bleve query. Empty clauses are
// skipped; an empty list yields a match-none query.
func (tr *Translator) Translate(nodes []query.Node) (bquery.Query, error) {
	var must, should, mustNot []bquery.Query

	const (
		connectOr = iota
		connectAnd
		connectNot
	)
	next := connectOr
	lastInShould := false

	for _, n := range nodes {
		switch v := n.(type) {
		case query.Operator:
			switch v {
			case query.OpAnd, query.OpAndSym:
				next = connectAnd
				// both sides of an AND are required
				if lastInShould && len(should) > 0 {
					must = append(must, should[len(should)-1])
					should = should[:len(should)-1]
					lastInShould = false
				}
			case query.OpOr, query.OpOrSym:
				next = connectOr
			case query.OpNot, query.OpNotSym:
				next = connectNot
			}
		case *query.Term:
			q, err := tr.termQuery(v)
			if err != nil {
				return nil, err
			}
			if q == nil {
				continue
			}
			switch next {
			case connectAnd:
				must = append(must, q)
				lastInShould = false
			case connectNot:
				mustNot = append(mustNot, q)
				lastInShould = false
			default:
				should = append(should, q)
				lastInShould = true
			}
			next = connectOr
		}
	}

	total := len(must) + len(should) + len(mustNot)
	switch {
	case total == 0:
		return bquery.NewMatchNoneQuery(), nil
	case total == 1 && len(must) == 1:
		return must[0], nil
	case total == 1 && len(should) == 1:
		return should[0], nil
	}
	return bquery.NewBooleanQuery(must, should, mustNot), nil
}

// termQuery converts one term. It returns nil for terms with an empty
// value so callers can drop them.
func (tr *Translator) termQuery(t *query.Term) (bquery.Query, error) {
	val := t.Value()
	if val == "" {
		return nil, nil
	}

	if t.Opener() != 0 {
		nodes, err := tr.p.Parse(val)
		if err != nil {
			return nil, err
		}
		sub, err := tr.Translate(nodes)
		if err != nil {
			return nil, err
		}
		applyBoost(sub, t)
		return sub, nil
	}

	var q bquery.Query
	if raw, ok := t.Proximity(); ok {
		fq := bquery.NewFuzzyQuery(val)
		if n, err := strconv.Atoi(raw); err == nil {
			fq.SetFuzziness(n)
		}
		q = fq
	} else {
		q = bquery.NewMatchPhraseQuery(val)
	}

	field := tr.defaultField
	if t.HasField() {
		field = t.Field()
	}
	if field != "" {
		if fq, ok := q.(bquery.FieldableQuery); ok {
			fq.SetField(field)
		}
	}
	applyBoost(q, t)
	return q, nil
}

func applyBoost(q bquery.Query, t *query.Term) {
	raw, ok := t.Boost()
	if !ok {
		return
	}
	// boost values are validated at parse time
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return
	}
	if bq, ok := q.(bquery.BoostableQuery); ok {
		bq.SetBoost(f)
	}
}
