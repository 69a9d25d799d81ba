package query

// Operator is one of the six canonical boolean connectives. Operators are
// compared by value; OpAnd always equals OpAnd regardless of where it was
// produced.
type Operator string

// The canonical operators. The word and symbol spellings are distinct
// values: "AND" and "&&" parse and serialize independently.
const (
	OpAnd    Operator = "AND"
	OpOr     Operator = "OR"
	OpNot    Operator = "NOT"
	OpAndSym Operator = "&&"
	OpOrSym  Operator = "||"
	OpNotSym Operator = "!"
)

var operators = map[string]Operator{
	"AND": OpAnd,
	"OR":  OpOr,
	"NOT": OpNot,
	"&&":  OpAndSym,
	"||":  OpOrSym,
	"!":   OpNotSym,
}

// OperatorFor reports whether tok is exactly a canonical operator.
// Matching is whole-token only; substrings of longer tokens never match.
func OperatorFor(tok string) (Operator, bool) {
	op, ok := operators[tok]
	return op, ok
}

// String returns the operator in wire syntax. Operators are already wire
// syntax, so this is the raw canonical value.
func (o Operator) String() string { return string(o) }
