package query

import (
	"regexp"
	"strings"
)

// DefaultField is the field assumed when a clause has no explicit prefix.
const DefaultField = "text"

// brackets is the fixed opener/closer pairing table. The closer is always
// derived from the opener, never stored on a term.
var brackets = map[rune]rune{
	'(': ')',
	'{': '}',
	'[': ']',
}

var boostPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

// Closer returns the closing bracket paired with open.
func Closer(open rune) (rune, bool) {
	c, ok := brackets[open]
	return c, ok
}

// Term is one query clause: a field, a value, and optional decorations
// (leading modifier, bracket grouping, boost, proximity).
//
// Content is either an open buffer of appended fragments or a finalized
// value, never both. PushValue appends while the buffer is open; Close and
// SetValue finalize it.
type Term struct {
	field string
	mod   string

	fragments []string
	value     string
	closed    bool
	count     int

	opener rune

	boosted bool
	boost   string

	prox    bool
	proxVal string
}

// NewTerm returns an empty term with an open value buffer.
func NewTerm() *Term {
	return &Term{}
}

// Field returns the resolved field: the explicit field if one is set,
// otherwise DefaultField.
func (t *Term) Field() string {
	if t.field != "" {
		return t.field
	}
	return DefaultField
}

// HasField reports whether an explicit field is set.
func (t *Term) HasField() bool { return t.field != "" }

// SetField sets the raw field name.
func (t *Term) SetField(name string) { t.field = name }

// Mod returns the leading modifier symbol, or "".
func (t *Term) Mod() string { return t.mod }

// SetMod sets the leading modifier symbol, emitted verbatim before the
// field prefix.
func (t *Term) SetMod(mod string) { t.mod = mod }

// Value returns the accumulated content with leading and trailing
// whitespace trimmed. Internal whitespace is preserved.
func (t *Term) Value() string {
	v := t.value
	if !t.closed {
		v = strings.Join(t.fragments, "")
	}
	return strings.TrimSpace(v)
}

// PushValue appends a fragment to the open value buffer. It returns
// ErrIllegalState if the buffer has already been closed.
func (t *Term) PushValue(fragment string) error {
	if t.closed {
		return ErrIllegalState
	}
	t.fragments = append(t.fragments, fragment)
	t.count++
	return nil
}

// SetValue sets a static value, closing the buffer.
func (t *Term) SetValue(v string) {
	t.value = v
	t.fragments = nil
	t.closed = true
}

// Close finalizes the value buffer, keeping its contents. Closing an
// already-closed term is a no-op.
func (t *Term) Close() {
	if t.closed {
		return
	}
	t.value = strings.Join(t.fragments, "")
	t.fragments = nil
	t.closed = true
}

// Closed reports whether the value buffer has been finalized.
func (t *Term) Closed() bool { return t.closed }

// FragmentCount returns the number of fragments appended so far.
func (t *Term) FragmentCount() int { return t.count }

// Opener returns the opening bracket, or 0 if the term is not bracketed.
func (t *Term) Opener() rune { return t.opener }

// SetOpener marks the term as a bracketed group. It returns
// ErrInvalidBracket unless ch is one of the fixed openers ( { [.
func (t *Term) SetOpener(ch rune) error {
	if _, ok := brackets[ch]; !ok {
		return ErrInvalidBracket
	}
	t.opener = ch
	return nil
}

// Boost returns the boost value and whether a boost is set.
func (t *Term) Boost() (string, bool) { return t.boost, t.boosted }

// SetBoost sets the relevance boost. raw must be a number with an optional
// fractional part; otherwise ErrInvalidBoost is returned and the term is
// unchanged.
func (t *Term) SetBoost(raw string) error {
	if !boostPattern.MatchString(raw) {
		return ErrInvalidBoost
	}
	t.boosted = true
	t.boost = raw
	return nil
}

// Proximity returns the proximity value and whether proximity is set.
// An empty value with proximity set means default slop.
func (t *Term) Proximity() (string, bool) { return t.proxVal, t.prox }

// SetProximity sets the proximity modifier. An empty raw requests the
// default slop.
func (t *Term) SetProximity(raw string) {
	t.prox = true
	t.proxVal = raw
}

// SolrString renders the term in wire syntax: modifier, field prefix,
// value (bracketed if an opener is set), boost, proximity. The field
// prefix is emitted only when an explicit field is set and either
// includeDefaultField is true or the field differs from DefaultField.
//
// A term whose value is empty renders as "".
func (t *Term) SolrString(includeDefaultField bool) string {
	val := t.Value()
	if val == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(t.mod)
	if t.field != "" && (includeDefaultField || t.field != DefaultField) {
		b.WriteString(t.field)
		b.WriteByte(':')
	}
	if t.opener != 0 {
		b.WriteRune(t.opener)
		b.WriteString(val)
		b.WriteRune(brackets[t.opener])
	} else {
		b.WriteString(val)
	}
	if t.boosted {
		b.WriteByte('^')
		b.WriteString(t.boost)
	}
	if t.prox {
		b.WriteByte('~')
		b.WriteString(t.proxVal)
	}
	return b.String()
}

// String renders the term in wire syntax with the default field omitted.
func (t *Term) String() string { return t.SolrString(false) }
