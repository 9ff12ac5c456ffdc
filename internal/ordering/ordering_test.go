package ordering

import (
	"errors"
	"testing"
)

func ranked(ids ...string) []Ranked {
	items := make([]Ranked, len(ids))
	for i, id := range ids {
		items[i] = Ranked{ID: id, SortOrder: i + 1}
	}
	return items
}

func assertOrder(t *testing.T, items []Ranked, ids ...string) {
	t.Helper()
	if len(items) != len(ids) {
		t.Fatalf("expected %d items, got %d: %+v", len(ids), len(items), items)
	}
	for i, id := range ids {
		if items[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, items[i].ID)
		}
		if items[i].SortOrder != i+1 {
			t.Fatalf("position %d: expected sortOrder %d, got %d", i, i+1, items[i].SortOrder)
		}
	}
}

func TestNextAppendsAtEnd(t *testing.T) {
	if got := Next(0); got != 1 {
		t.Fatalf("Next(0) = %d, want 1", got)
	}
	if got := Next(3); got != 4 {
		t.Fatalf("Next(3) = %d, want 4", got)
	}
	// A negative max can only come from an empty aggregate; treat as empty.
	if got := Next(-5); got != 1 {
		t.Fatalf("Next(-5) = %d, want 1", got)
	}
}

func TestMoveToLaterPosition(t *testing.T) {
	moved, err := Move(ranked("A", "B", "C"), "A", 1)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	assertOrder(t, moved, "B", "A", "C")
}

func TestMoveToFront(t *testing.T) {
	moved, err := Move(ranked("A", "B", "C"), "C", 0)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	assertOrder(t, moved, "C", "A", "B")
}

func TestMoveToEndClampsTarget(t *testing.T) {
	moved, err := Move(ranked("A", "B", "C"), "A", 99)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	assertOrder(t, moved, "B", "C", "A")
}

func TestMoveToSamePositionIsIdentity(t *testing.T) {
	moved, err := Move(ranked("A", "B", "C"), "B", 1)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	assertOrder(t, moved, "A", "B", "C")
}

func TestMoveIsPermutation(t *testing.T) {
	original := ranked("A", "B", "C", "D", "E")
	for target := 0; target < len(original); target++ {
		for _, id := range []string{"A", "C", "E"} {
			moved, err := Move(original, id, target)
			if err != nil {
				t.Fatalf("Move(%s, %d) error = %v", id, target, err)
			}
			seen := map[string]bool{}
			for _, item := range moved {
				seen[item.ID] = true
			}
			for _, item := range original {
				if !seen[item.ID] {
					t.Fatalf("Move(%s, %d) lost id %s", id, target, item.ID)
				}
			}
		}
	}
}

func TestMoveUnknownID(t *testing.T) {
	_, err := Move(ranked("A", "B"), "Z", 0)
	if !errors.Is(err, ErrUnknownID) {
		t.Fatalf("expected ErrUnknownID, got %v", err)
	}
}

func TestMoveDoesNotMutateInput(t *testing.T) {
	original := ranked("A", "B", "C")
	if _, err := Move(original, "C", 0); err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	assertOrder(t, original, "A", "B", "C")
}

func TestRenumberClosesGaps(t *testing.T) {
	// Ranks drift after deletes; Renumber restores 1..N.
	items := []Ranked{{ID: "A", SortOrder: 1}, {ID: "C", SortOrder: 3}, {ID: "D", SortOrder: 7}}
	assertOrder(t, Renumber(items), "A", "C", "D")
}

func TestRenumberIsIdempotent(t *testing.T) {
	once := Renumber(ranked("A", "B", "C"))
	twice := Renumber(once)
	assertOrder(t, twice, "A", "B", "C")
}
