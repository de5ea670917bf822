package keno

import (
	"fmt"
	"slices"
)

const (
	MinNumber = 1
	MaxNumber = 80
	DrawSize  = 20
	MaxSpots  = 10
)

// Selection is a validated set of spots, sorted ascending.
// The zero value is the empty selection.
type Selection struct {
	nums []int
}

// ValidateSelection checks a player's picks and returns them as a Selection.
// An empty input is accepted; Play rejects it separately.
func ValidateSelection(nums []int) (Selection, error) {
	if len(nums) > MaxSpots {
		return Selection{}, fmt.Errorf("%w: got %d", ErrTooManySelections, len(nums))
	}
	var seen [MaxNumber + 1]bool
	for _, n := range nums {
		if n < MinNumber || n > MaxNumber {
			return Selection{}, fmt.Errorf("%w: %d", ErrInvalidRange, n)
		}
		if seen[n] {
			return Selection{}, fmt.Errorf("%w: %d", ErrDuplicateNumber, n)
		}
		seen[n] = true
	}
	out := slices.Clone(nums)
	slices.Sort(out)
	return Selection{nums: out}, nil
}

// Len is the number of spots.
func (s Selection) Len() int { return len(s.nums) }

func (s Selection) Contains(n int) bool {
	_, ok := slices.BinarySearch(s.nums, n)
	return ok
}

// Numbers returns a copy of the spots in ascending order.
func (s Selection) Numbers() []int { return slices.Clone(s.nums) }
