package ident

import "testing"

func TestInternIsIdempotent(t *testing.T) {
	tbl := NewTable()
	a := tbl.Intern("foo")
	b := tbl.Intern("foo")
	if a != b {
		t.Fatalf("expected interning the same string twice to yield the same ID, got %d and %d", a, b)
	}
}

func TestInternDistinctNamesGetDistinctIDs(t *testing.T) {
	tbl := NewTable()
	a := tbl.Intern("foo")
	b := tbl.Intern("bar")
	if a == b {
		t.Fatalf("expected distinct names to get distinct IDs, both got %d", a)
	}
}

func TestNameOfRoundTrips(t *testing.T) {
	tbl := NewTable()
	id := tbl.Intern("quux")
	if got := tbl.NameOf(id); got != "quux" {
		t.Fatalf("expected NameOf to round-trip to %q, got %q", "quux", got)
	}
}

func TestNameOfInvalidIDPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected NameOf with an unknown ID to panic")
		}
	}()
	tbl := NewTable()
	tbl.NameOf(999)
}

func TestLookupReportsPresence(t *testing.T) {
	tbl := NewTable()
	if _, ok := tbl.Lookup("unseen"); ok {
		t.Fatalf("expected Lookup to report absence for an uninterned name")
	}
	tbl.Intern("seen")
	if _, ok := tbl.Lookup("seen"); !ok {
		t.Fatalf("expected Lookup to report presence for an interned name")
	}
}

func TestLenCountsDistinctNames(t *testing.T) {
	tbl := NewTable()
	tbl.Intern("a")
	tbl.Intern("b")
	tbl.Intern("a")
	if tbl.Len() != 2 {
		t.Fatalf("expected 2 distinct names, got %d", tbl.Len())
	}
}
