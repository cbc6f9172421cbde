package store

import (
	"testing"
)

func TestRingAppendBelowCapacity(t *testing.T) {
	r := newRing[int](5)
	r.append(1)
	r.append(2)
	r.append(3)

	if r.len() != 3 {
		t.Errorf("len = %d, want 3", r.len())
	}
	got := r.tail(0)
	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("tail(0) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tail(0)[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestRingEvictsOldestFirst(t *testing.T) {
	r := newRing[int](3)
	for i := 1; i <= 5; i++ {
		r.append(i)
	}

	if r.len() != 3 {
		t.Errorf("len = %d, want capacity 3", r.len())
	}
	got := r.tail(0)
	want := []int{3, 4, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tail(0)[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestRingTailLimit(t *testing.T) {
	r := newRing[int](10)
	for i := 1; i <= 7; i++ {
		r.append(i)
	}

	got := r.tail(3)
	want := []int{5, 6, 7}
	if len(got) != 3 {
		t.Fatalf("tail(3) length = %d, want 3", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tail(3)[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestRingTailLimitBeyondSize(t *testing.T) {
	r := newRing[int](10)
	r.append(1)
	r.append(2)

	if got := r.tail(100); len(got) != 2 {
		t.Errorf("tail(100) length = %d, want 2", len(got))
	}
}

func TestRingReset(t *testing.T) {
	r := newRing[int](3)
	for i := 1; i <= 5; i++ {
		r.append(i)
	}
	r.reset()

	if r.len() != 0 {
		t.Errorf("len after reset = %d, want 0", r.len())
	}
	r.append(9)
	got := r.tail(0)
	if len(got) != 1 || got[0] != 9 {
		t.Errorf("tail(0) after reset+append = %v, want [9]", got)
	}
}
