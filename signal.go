package gatesim

import "strings"

// Bit is a single three-valued logic state.
type Bit uint8

const (
	Zero Bit = iota
	One
	X // unknown/undefined
)

func (b Bit) String() string {
	switch b {
	case Zero:
		return "0"
	case One:
		return "1"
	default:
		return "X"
	}
}

// A Signal is an opaque, immutable, fixed-width three-valued (0/1/X) bit
// vector. The zero value is not a valid Signal; use Undefined or FromBits.
//
// Widths up to 64 are stored inline (bits/undef). Wider signals fall back
// to a word-sliced representation; see the wide variant below. This split
// mirrors the source vector library's Value64/ValueBig split, without the
// Hi-Z state (not part of this engine's three-valued model) and without
// the arithmetic operators a full tri-state ALU library would add — the
// cell library (package cells) is responsible for interpreting bits, not
// this type.
type Signal struct {
	width int
	bits  uint64 // bit i set => logical 1, subject to undef
	undef uint64 // bit i set => that bit is X, overrides bits
	wide  []uint64
	wideU []uint64
}

// Undefined returns a signal of the given width with every bit set to X.
func Undefined(width int) Signal {
	if width <= 0 {
		panic("gatesim: signal width must be positive")
	}
	if width <= 64 {
		mask := maskFor(width)
		return Signal{width: width, undef: mask}
	}
	words := wideWords(width)
	u := make([]uint64, words)
	for i := range u {
		u[i] = ^uint64(0)
	}
	if r := width % 64; r != 0 {
		u[words-1] = maskFor(r)
	}
	return Signal{width: width, wide: make([]uint64, words), wideU: u}
}

// Zeros returns a signal of the given width with every bit set to 0.
func Zeros(width int) Signal {
	if width <= 0 {
		panic("gatesim: signal width must be positive")
	}
	if width <= 64 {
		return Signal{width: width}
	}
	return Signal{width: width, wide: make([]uint64, wideWords(width)), wideU: make([]uint64, wideWords(width))}
}

func maskFor(width int) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(width)) - 1
}

func wideWords(width int) int {
	return (width + 63) / 64
}

// Width returns the signal's bit width.
func (s Signal) Width() int { return s.width }

// Equal reports whether s and o have the same width and the same bit
// values (including which bits are X).
func (s Signal) Equal(o Signal) bool {
	if s.width != o.width {
		return false
	}
	if s.width <= 64 {
		return s.bits == o.bits && s.undef == o.undef
	}
	for i := range s.wide {
		if s.wide[i] != o.wide[i] || s.wideU[i] != o.wideU[i] {
			return false
		}
	}
	return true
}

// Bit returns the state of bit i (0 is the least-significant bit).
func (s Signal) Bit(i int) Bit {
	if i < 0 || i >= s.width {
		panic("gatesim: bit index out of range")
	}
	if s.width <= 64 {
		m := uint64(1) << uint(i)
		if s.undef&m != 0 {
			return X
		}
		if s.bits&m != 0 {
			return One
		}
		return Zero
	}
	w, b := i/64, uint(i%64)
	m := uint64(1) << b
	if s.wideU[w]&m != 0 {
		return X
	}
	if s.wide[w]&m != 0 {
		return One
	}
	return Zero
}

// HasUnknown reports whether any bit of s is X.
func (s Signal) HasUnknown() bool {
	if s.width <= 64 {
		return s.undef&maskFor(s.width) != 0
	}
	for _, u := range s.wideU {
		if u != 0 {
			return true
		}
	}
	return false
}

// FromBool builds a 1-bit defined signal.
func FromBool(b bool) Signal {
	if b {
		return Signal{width: 1, bits: 1}
	}
	return Signal{width: 1}
}

// Bool returns the value of a defined 1-bit signal, or false if undefined.
func (s Signal) Bool() bool {
	return s.width >= 1 && s.Bit(0) == One
}

// FromUint64 builds a defined signal of the given width from the low bits
// of v. Panics if width > 64; use FromWords for wider values.
func FromUint64(width int, v uint64) Signal {
	if width <= 0 || width > 64 {
		panic("gatesim: width out of range for FromUint64")
	}
	return Signal{width: width, bits: v & maskFor(width)}
}

// Uint64 returns the low 64 bits of s as an unsigned integer, treating any
// X bit as 0. Callers that care about unknown bits should check
// HasUnknown first.
func (s Signal) Uint64() uint64 {
	if s.width <= 64 {
		return s.bits &^ s.undef & maskFor(s.width)
	}
	return s.wide[0] &^ s.wideU[0]
}

// FromWords builds a defined signal from a little-endian slice of 64-bit
// words, used for widths beyond 64 bits.
func FromWords(width int, words []uint64) Signal {
	if width <= 0 {
		panic("gatesim: signal width must be positive")
	}
	if width <= 64 {
		var v uint64
		if len(words) > 0 {
			v = words[0]
		}
		return FromUint64(width, v)
	}
	n := wideWords(width)
	w := make([]uint64, n)
	copy(w, words)
	if r := width % 64; r != 0 {
		w[n-1] &= maskFor(r)
	}
	return Signal{width: width, wide: w, wideU: make([]uint64, n)}
}

// FromBits builds a signal from a slice of per-bit states, bits[0] being
// the least-significant bit. This is the construction path cell
// implementations (package cells) use to assemble a bus output one bit
// at a time rather than packing words by hand.
func FromBits(bits []Bit) Signal {
	width := len(bits)
	if width <= 0 {
		panic("gatesim: signal width must be positive")
	}
	s := Undefined(width)
	if width <= 64 {
		s.bits, s.undef = 0, 0
		for i, b := range bits {
			m := uint64(1) << uint(i)
			switch b {
			case One:
				s.bits |= m
			case Zero:
			default:
				s.undef |= m
			}
		}
		return s
	}
	for i, b := range bits {
		w, m := i/64, uint64(1)<<uint(i%64)
		switch b {
		case One:
			s.wide[w] |= m
			s.wideU[w] &^= m
		case Zero:
			s.wideU[w] &^= m
		default:
			s.wideU[w] |= m
		}
	}
	return s
}

// TransportForm is the wire-friendly representation of a Signal accepted
// by transport codecs (see package transport) — a width plus a pair of
// little-endian bit/undef word lists. It round-trips through
// Signal.Bits/FromTransportForm without needing the Signal layout itself
// to be exported.
type TransportForm struct {
	Width int
	Bits  []uint64
	Undef []uint64
}

// Bits returns the transport-friendly round-trip form of s.
func (s Signal) Bits() TransportForm {
	if s.width <= 64 {
		return TransportForm{Width: s.width, Bits: []uint64{s.bits}, Undef: []uint64{s.undef}}
	}
	bits := make([]uint64, len(s.wide))
	undef := make([]uint64, len(s.wideU))
	copy(bits, s.wide)
	copy(undef, s.wideU)
	return TransportForm{Width: s.width, Bits: bits, Undef: undef}
}

// FromTransportForm reconstructs a Signal from its transport-friendly
// form, as delivered by a host transport (see package transport).
func FromTransportForm(t TransportForm) Signal {
	if t.Width <= 0 {
		panic("gatesim: signal width must be positive")
	}
	if t.Width <= 64 {
		var b, u uint64
		if len(t.Bits) > 0 {
			b = t.Bits[0]
		}
		if len(t.Undef) > 0 {
			u = t.Undef[0]
		}
		m := maskFor(t.Width)
		return Signal{width: t.Width, bits: b & m, undef: u & m}
	}
	n := wideWords(t.Width)
	bits := make([]uint64, n)
	undef := make([]uint64, n)
	copy(bits, t.Bits)
	copy(undef, t.Undef)
	if r := t.Width % 64; r != 0 {
		bits[n-1] &= maskFor(r)
		undef[n-1] &= maskFor(r)
	}
	return Signal{width: t.Width, wide: bits, wideU: undef}
}

// String renders s as a sequence of '0'/'1'/'X' characters, most
// significant bit first.
func (s Signal) String() string {
	var b strings.Builder
	b.Grow(s.width)
	for i := s.width - 1; i >= 0; i-- {
		b.WriteString(s.Bit(i).String())
	}
	return b.String()
}
