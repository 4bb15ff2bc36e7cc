package tickqueue

import "testing"

func TestTickHeapOrdering(t *testing.T) {
	h := NewTickHeap()
	for _, v := range []int64{5, 1, 3, 1, 9, -2} {
		h.Push(v)
	}
	want := []int64{-2, 1, 1, 3, 5, 9}
	for _, w := range want {
		got, ok := h.Peek()
		if !ok {
			t.Fatalf("expected more entries, wanted %d", w)
		}
		if got != w {
			t.Fatalf("peek = %d, want %d", got, w)
		}
		popped, ok := h.Pop()
		if !ok || popped != w {
			t.Fatalf("pop = %d, want %d", popped, w)
		}
	}
	if h.Len() != 0 {
		t.Fatalf("expected empty heap, len = %d", h.Len())
	}
	if _, ok := h.Pop(); ok {
		t.Fatal("pop on empty heap returned ok = true")
	}
}

func TestOrderedSetInsertionOrder(t *testing.T) {
	s := NewOrderedSet[string, int]()
	s.Set("a", 1)
	s.Set("b", 2)
	s.Set("c", 3)
	// Update "a" in place: must not move to the back.
	s.Set("a", 10)

	var order []string
	for {
		k, v, ok := s.Take()
		if !ok {
			break
		}
		order = append(order, k)
		if k == "a" && v != 10 {
			t.Fatalf("expected updated value 10 for a, got %d", v)
		}
	}
	want := []string{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestOrderedSetGrowsDuringDrain(t *testing.T) {
	s := NewOrderedSet[int, int]()
	s.Set(1, 1)
	s.Set(2, 2)

	var seen []int
	for s.Len() > 0 {
		k, _, _ := s.Take()
		seen = append(seen, k)
		if k == 1 {
			s.Set(3, 3) // re-entrant insert during drain
		}
	}
	want := []int{1, 2, 3}
	if len(seen) != len(want) {
		t.Fatalf("seen = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("seen = %v, want %v", seen, want)
		}
	}
}
