package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonwraymond/solrq/query"
)

// DefaultMaxDepth is the bracket nesting limit used when Options.MaxDepth
// is zero.
const DefaultMaxDepth = 32

// Options configures a Parser.
type Options struct {
	// Strict rejects unknown field names and unterminated quotes instead
	// of recovering. Default: false (permissive).
	Strict bool

	// AllowedFields is the field allow-list checked in strict mode,
	// typically supplied by index schema introspection. Ignored when
	// Strict is false.
	AllowedFields []string

	// MaxDepth caps bracket nesting. Default: DefaultMaxDepth.
	MaxDepth int
}

// Parser scans raw query strings into node lists. The zero-value Options
// give a permissive parser.
type Parser struct {
	strict   bool
	allowed  map[string]struct{}
	maxDepth int
}

// New creates a Parser with the given options.
func New(opts Options) *Parser {
	p := &Parser{
		strict:   opts.Strict,
		maxDepth: opts.MaxDepth,
	}
	if p.maxDepth <= 0 {
		p.maxDepth = DefaultMaxDepth
	}
	if len(opts.AllowedFields) > 0 {
		p.allowed = make(map[string]struct{}, len(opts.AllowedFields))
		for _, f := range opts.AllowedFields {
			p.allowed[f] = struct{}{}
		}
	}
	return p
}

// Parse scans text left to right and returns the resulting node list.
// On error no partial list is returned.
func (p *Parser) Parse(text string) ([]query.Node, error) {
	return p.scan(text, 0)
}

// ParseInto parses text and appends its serialized node list to the value
// buffer of t. This is the mechanism bracket groups are resolved with; it
// is exported so callers can pre-populate a decorated term themselves.
func (p *Parser) ParseInto(text string, t *query.Term) error {
	return p.parseInto(text, t, 0)
}

// Normalize parses text, runs the query.Optimize cleanup pass and joins
// the survivors into a canonical query string.
func (p *Parser) Normalize(text string) (string, error) {
	nodes, err := p.scan(text, 0)
	if err != nil {
		return "", err
	}
	return query.Join(query.Optimize(nodes)), nil
}

func (p *Parser) parseInto(text string, t *query.Term, depth int) error {
	nodes, err := p.scan(text, depth)
	if err != nil {
		return err
	}
	return t.PushValue(query.Join(nodes))
}

func (p *Parser) fieldAllowed(name string) bool {
	if !p.strict {
		return true
	}
	_, ok := p.allowed[name]
	return ok
}

// runStops are the characters that terminate a plain value run. Closing
// brackets are absent: a stray closer is an ordinary character.
const runStops = `"^~:([{`

// scan is the single-pass state machine. All scan state is local, so
// recursive sub-parses and concurrent calls cannot corrupt each other.
func (p *Parser) scan(input string, depth int) ([]query.Node, error) {
	if depth >= p.maxDepth {
		return nil, fmt.Errorf("bracket nesting deeper than %d: %w", p.maxDepth, ErrMaxDepth)
	}

	var (
		out    []query.Node
		cur    *query.Term
		quoted bool // current term contains quoted content
		deco   bool // current term carries a field or decoration
	)

	ensure := func() *query.Term {
		if cur == nil {
			cur = query.NewTerm()
			quoted = false
			deco = false
		}
		return cur
	}

	// flush closes the open term and appends it, or emits an operator if
	// the term is a bare token spelling one.
	flush := func() {
		if cur == nil {
			return
		}
		if !quoted && !deco {
			if op, ok := query.OperatorFor(cur.Value()); ok {
				out = append(out, op)
				cur = nil
				return
			}
		}
		cur.Close()
		out = append(out, cur)
		cur = nil
	}

	pos := 0
	for pos < len(input) {
		r, w := utf8.DecodeRuneInString(input[pos:])
		switch {
		case unicode.IsSpace(r):
			flush()
			pos += w

		case r == '"':
			openAt := pos
			pos += w
			var raw string
			if end := strings.IndexByte(input[pos:], '"'); end < 0 {
				if p.strict {
					return nil, fmt.Errorf("quote opened at offset %d: %w", openAt, ErrUnterminatedQuote)
				}
				// permissive mode auto-closes at end of input
				raw = input[pos:]
				pos = len(input)
			} else {
				raw = input[pos : pos+end]
				pos += end + 1
			}
			t := ensure()
			quoted = true
			if err := t.PushValue(raw); err != nil {
				return nil, err
			}

		case r == ':':
			// a run of plain characters followed by ':' names a field;
			// anywhere else the colon is literal
			if cur != nil && !quoted && !deco && cur.Value() != "" {
				name := cur.Value()
				if !p.fieldAllowed(name) {
					return nil, fmt.Errorf("field %q at offset %d: %w", name, pos, ErrUnknownField)
				}
				cur = query.NewTerm()
				cur.SetField(name)
				deco = true
			} else if err := ensure().PushValue(":"); err != nil {
				return nil, err
			}
			pos += w

		case r == '^':
			pos += w
			num := numericRun(input, &pos)
			if err := ensure().SetBoost(num); err != nil {
				return nil, fmt.Errorf("boost %q at offset %d: %w", num, pos, err)
			}
			deco = true

		case r == '~':
			pos += w
			ensure().SetProximity(numericRun(input, &pos))
			deco = true

		case r == '(' || r == '[' || r == '{':
			if cur != nil && (cur.Value() != "" || cur.Opener() != 0) {
				flush()
			}
			t := ensure()
			closeAt, err := matchCloser(input, pos, r)
			if err != nil {
				return nil, err
			}
			if err := t.SetOpener(r); err != nil {
				return nil, err
			}
			if err := p.parseInto(input[pos+w:closeAt], t, depth+1); err != nil {
				return nil, err
			}
			deco = true
			pos = closeAt + 1

		default:
			start := pos
			for pos < len(input) {
				r2, w2 := utf8.DecodeRuneInString(input[pos:])
				if unicode.IsSpace(r2) || strings.ContainsRune(runStops, r2) {
					break
				}
				pos += w2
			}
			if err := ensure().PushValue(input[start:pos]); err != nil {
				return nil, err
			}
		}
	}

	flush()
	return out, nil
}

// numericRun consumes a run of digits and dots starting at *pos and
// advances the cursor past it. Validation happens in the term setters.
func numericRun(input string, pos *int) string {
	start := *pos
	for *pos < len(input) {
		c := input[*pos]
		if (c < '0' || c > '9') && c != '.' {
			break
		}
		*pos++
	}
	return input[start:*pos]
}

// matchCloser locates the closer paired with the opener at openPos,
// respecting nested depth of the same bracket kind. Quoted sections are
// opaque to the search.
func matchCloser(input string, openPos int, open rune) (int, error) {
	closer, _ := query.Closer(open)
	nesting := 1
	for i := openPos + 1; i < len(input); {
		r, w := utf8.DecodeRuneInString(input[i:])
		switch r {
		case '"':
			end := strings.IndexByte(input[i+w:], '"')
			if end < 0 {
				i = len(input)
				continue
			}
			i += w + end + 1
			continue
		case open:
			nesting++
		case closer:
			nesting--
			if nesting == 0 {
				return i, nil
			}
		}
		i += w
	}
	return 0, fmt.Errorf("bracket %q opened at offset %d: %w", open, openPos, ErrUnbalancedBracket)
}
