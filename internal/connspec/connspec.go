// Package connspec parses compact pin-list specification strings of the
// form a host or test helper might use to describe a bus of ports in one
// line, e.g. "a[4], b[4], sel" or "in[0..3]". It is grounded on the
// teacher's internal/hdl pin-spec lexer/parser (parseIOspec in the
// current hwsim API, and internal/hdl/parse.go in its predecessor
// generation), reworked as a small hand-rolled scanner so it has no
// dependency on the teacher's own internal/lex package, which this
// module does not carry forward.
package connspec

import (
	"strconv"
	"unicode"

	"github.com/pkg/errors"
)

// Pin is one parsed entry: a bare pin name ("sel"), a bus declared by
// size ("a[4]" — Count set, Start/End zero), or an explicit bit range
// ("a[0..3]" — Start/End set, Count zero).
type Pin struct {
	Name  string
	Count int // > 0 for "name[N]" (a fresh N-wide bus)
	Start int // for "name[A..B]"
	End   int
	Range bool // true if Start/End came from an explicit ".." range
}

// Expand returns the individual pin names this entry denotes, using the
// same "name[i]" bus-pin convention as gatesim.BusPinName. A bare pin
// (Count == 0 and !Range) expands to itself.
func (p Pin) Expand() []string {
	switch {
	case p.Range:
		n := p.End - p.Start + 1
		if n <= 0 {
			return nil
		}
		out := make([]string, n)
		for i := 0; i < n; i++ {
			out[i] = busPinName(p.Name, p.Start+i)
		}
		return out
	case p.Count > 0:
		out := make([]string, p.Count)
		for i := 0; i < p.Count; i++ {
			out[i] = busPinName(p.Name, i)
		}
		return out
	default:
		return []string{p.Name}
	}
}

func busPinName(name string, i int) string {
	return name + "[" + strconv.Itoa(i) + "]"
}

// Parse parses a comma-separated pin-spec string into its entries
// without expanding buses, so a caller can inspect bus widths before
// deciding how to build ports from them.
func Parse(spec string) ([]Pin, error) {
	p := &parser{input: spec}
	return p.parseAll()
}

// ExpandNames parses spec and returns the fully expanded list of
// individual pin names, e.g. ExpandNames("a[2], sel") ==
// []string{"a[0]", "a[1]", "sel"}.
func ExpandNames(spec string) ([]string, error) {
	pins, err := Parse(spec)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, p := range pins {
		out = append(out, p.Expand()...)
	}
	return out, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) parseAll() ([]Pin, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return nil, nil
	}
	var out []Pin
	for {
		pin, err := p.parseOne()
		if err != nil {
			return nil, err
		}
		out = append(out, pin)
		p.skipSpace()
		if p.pos >= len(p.input) {
			return out, nil
		}
		if p.input[p.pos] != ',' {
			return nil, p.errorf("expected ',' or end of input")
		}
		p.pos++
		p.skipSpace()
	}
}

func (p *parser) parseOne() (Pin, error) {
	name, err := p.ident()
	if err != nil {
		return Pin{}, err
	}
	pin := Pin{Name: name}
	p.skipSpace()
	if p.pos >= len(p.input) || p.input[p.pos] != '[' {
		return pin, nil
	}
	p.pos++ // '['
	p.skipSpace()
	first, err := p.integer()
	if err != nil {
		return Pin{}, err
	}
	p.skipSpace()
	if p.pos+1 < len(p.input) && p.input[p.pos] == '.' && p.input[p.pos+1] == '.' {
		p.pos += 2
		p.skipSpace()
		last, err := p.integer()
		if err != nil {
			return Pin{}, err
		}
		if last < first {
			return Pin{}, p.errorf("range end %d before start %d", last, first)
		}
		pin.Range, pin.Start, pin.End = true, first, last
	} else {
		pin.Count = first
	}
	p.skipSpace()
	if p.pos >= len(p.input) || p.input[p.pos] != ']' {
		return Pin{}, p.errorf("missing closing ']'")
	}
	p.pos++
	return pin, nil
}

func (p *parser) ident() (string, error) {
	start := p.pos
	if p.pos >= len(p.input) || !isIdentStart(rune(p.input[p.pos])) {
		return "", p.errorf("expected pin name")
	}
	p.pos++
	for p.pos < len(p.input) && isIdentCont(rune(p.input[p.pos])) {
		p.pos++
	}
	return p.input[start:p.pos], nil
}

func (p *parser) integer() (int, error) {
	start := p.pos
	for p.pos < len(p.input) && unicode.IsDigit(rune(p.input[p.pos])) {
		p.pos++
	}
	if start == p.pos {
		return 0, p.errorf("expected integer")
	}
	return strconv.Atoi(p.input[start:p.pos])
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return errors.Errorf("connspec: in %q at pos %d: %s", p.input, p.pos+1, errors.Errorf(format, args...))
}

func isIdentStart(r rune) bool { return unicode.IsLetter(r) || r == '_' }
func isIdentCont(r rune) bool  { return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' }
