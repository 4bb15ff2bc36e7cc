package gatesim_test

import (
	"testing"
	"testing/quick"

	gs "github.com/digital-logic-and-computer-design/digitaljs"
)

func TestUndefinedAllX(t *testing.T) {
	for _, w := range []int{1, 3, 64, 65, 130} {
		s := gs.Undefined(w)
		if !s.HasUnknown() {
			t.Fatalf("width %d: expected HasUnknown", w)
		}
		for i := 0; i < w; i++ {
			if s.Bit(i) != gs.X {
				t.Fatalf("width %d bit %d: expected X, got %v", w, i, s.Bit(i))
			}
		}
	}
}

func TestZerosNoUnknown(t *testing.T) {
	for _, w := range []int{1, 64, 65, 200} {
		s := gs.Zeros(w)
		if s.HasUnknown() {
			t.Fatalf("width %d: unexpected HasUnknown", w)
		}
	}
}

func TestSignalEqual(t *testing.T) {
	a := gs.FromUint64(8, 0xAA)
	b := gs.FromUint64(8, 0xAA)
	c := gs.FromUint64(8, 0xAB)
	if !a.Equal(b) {
		t.Fatal("expected equal signals to compare equal")
	}
	if a.Equal(c) {
		t.Fatal("expected differing signals to compare unequal")
	}
	if a.Equal(gs.Undefined(8)) {
		t.Fatal("defined and undefined signals must not compare equal")
	}
	if a.Equal(gs.FromUint64(9, 0xAA)) {
		t.Fatal("signals of differing width must not compare equal")
	}
}

func TestTransportRoundTrip(t *testing.T) {
	f := func(w uint8, v uint64) bool {
		width := int(w)%200 + 1
		s := gs.FromUint64(minInt(width, 64), v)
		if width > 64 {
			s = gs.FromWords(width, []uint64{v, v >> 3})
		}
		got := gs.FromTransportForm(s.Bits())
		return got.Equal(s)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestUndefinedTransportRoundTrip(t *testing.T) {
	for _, w := range []int{1, 16, 64, 65, 129} {
		s := gs.Undefined(w)
		got := gs.FromTransportForm(s.Bits())
		if !got.Equal(s) {
			t.Fatalf("width %d: round trip mismatch", w)
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
