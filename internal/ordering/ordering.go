// Package ordering maintains the dense display rank of a content
// collection. Ranks are 1-based and contiguous at rest: after any
// successful operation the sort orders of a collection are exactly 1..N.
package ordering

import (
	"errors"
	"fmt"
)

var ErrUnknownID = errors.New("ordering: id not in collection")

// Ranked is one member of an ordered collection.
type Ranked struct {
	ID        string
	SortOrder int
}

// Next returns the rank for an item appended to a collection whose current
// maximum rank is max. New items always go to the end; they are only
// repositioned by an explicit Move.
func Next(max int) int {
	if max < 0 {
		max = 0
	}
	return max + 1
}

// Move relocates the item with movedID to targetIndex (0-based) and
// renumbers every item to its new 1-based position. The input slice is not
// modified. The result holds the same ids as the input in a new order;
// targetIndex is clamped to the valid range.
func Move(items []Ranked, movedID string, targetIndex int) ([]Ranked, error) {
	sourceIndex := -1
	for i, item := range items {
		if item.ID == movedID {
			sourceIndex = i
			break
		}
	}
	if sourceIndex == -1 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownID, movedID)
	}

	if targetIndex < 0 {
		targetIndex = 0
	}
	if targetIndex > len(items)-1 {
		targetIndex = len(items) - 1
	}

	reordered := make([]Ranked, 0, len(items))
	reordered = append(reordered, items[:sourceIndex]...)
	reordered = append(reordered, items[sourceIndex+1:]...)

	reordered = append(reordered, Ranked{})
	copy(reordered[targetIndex+1:], reordered[targetIndex:])
	reordered[targetIndex] = items[sourceIndex]

	return Renumber(reordered), nil
}

// Renumber assigns every item the rank of its current position, restoring
// the dense 1..N invariant. The input order is preserved.
func Renumber(items []Ranked) []Ranked {
	renumbered := make([]Ranked, len(items))
	for i, item := range items {
		renumbered[i] = Ranked{ID: item.ID, SortOrder: i + 1}
	}
	return renumbered
}
