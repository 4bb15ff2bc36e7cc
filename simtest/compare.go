package simtest

import (
	"math/rand"
	"testing"

	gs "github.com/digital-logic-and-computer-design/digitaljs"
)

func randomSignal(r *rand.Rand, bits int) gs.Signal {
	out := make([]gs.Bit, bits)
	for i := range out {
		switch r.Intn(3) {
		case 0:
			out[i] = gs.Zero
		case 1:
			out[i] = gs.One
		default:
			out[i] = gs.X
		}
	}
	return gs.FromBits(out)
}

// ComparePart runs two cells with identical port tables through n random
// input vectors each, failing the test if their computed outputs ever
// disagree. This is the Cell-level counterpart to hwtest.ComparePart: it
// lets a cell library test an optimized implementation of a part against
// a naive reference without hand-enumerating cases.
func ComparePart(t *testing.T, seed int64, n int, a, b *gs.Cell) {
	t.Helper()
	if len(a.Inputs) != len(b.Inputs) || len(a.Outputs) != len(b.Outputs) {
		t.Fatalf("ComparePart: port count mismatch between %q and %q", a.Type, b.Type)
	}
	r := rand.New(rand.NewSource(seed))
	for i := 0; i < n; i++ {
		in := make(gs.Inputs, len(a.Inputs))
		for _, p := range a.Inputs {
			in[p.ID] = randomSignal(r, p.Bits)
		}
		ra := a.Operation(in, nil)
		rb := b.Operation(in, nil)
		for _, p := range a.Outputs {
			sa, sb := ra.Outputs[p.ID], rb.Outputs[p.ID]
			if !sa.Equal(sb) {
				t.Fatalf("ComparePart: %q and %q disagree on %q for input %v: %s != %s", a.Type, b.Type, p.ID, in, sa, sb)
			}
		}
	}
}
