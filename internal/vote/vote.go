package vote

import (
	"fmt"
	"sort"
	"strings"
)

// Count builds the tally for a sequence of votes.
func Count(votes []Vote) Tally {
	result := make(Tally)

	for _, v := range votes {
		result[v.Color]++
	}

	return result
}

// Maximum returns the highest count in the tally, or zero when it is empty.
func (t Tally) Maximum() int {
	max := 0

	for _, v := range t {
		if v >= max {
			max = v
		}
	}

	return max
}

// Total returns the number of votes counted.
func (t Tally) Total() int {
	total := 0

	for _, v := range t {
		total += v
	}

	return total
}

// Winner returns the color with the most votes. When more than one color
// shares the maximum, the first of them in AllowedColors wins, followed by
// any other colors in name order.
//
// false is returned if no votes have been counted.
func (t Tally) Winner() (string, bool) {
	if len(t) == 0 {
		return "", false
	}

	max := t.Maximum()
	for _, color := range t.order() {
		if t[color] == max {
			return color, true
		}
	}

	return "", false
}

// Colors returns the colors present in the tally sorted by name.
func (t Tally) Colors() []string {
	result := make([]string, 0, len(t))
	for color := range t {
		result = append(result, color)
	}

	sort.Strings(result)
	return result
}

// String renders the tally sorted by color name, for example
// {"Green": 1, "Red": 2}.
func (t Tally) String() string {
	parts := make([]string, 0, len(t))
	for _, color := range t.Colors() {
		parts = append(parts, fmt.Sprintf("%q: %d", color, t[color]))
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

// Copy returns an independent copy of the tally.
func (t Tally) Copy() Tally {
	result := make(Tally, len(t))
	for color, count := range t {
		result[color] = count
	}

	return result
}

// order is the tie break order. Canonical colors first, then anything else
// by name.
func (t Tally) order() []string {
	result := make([]string, 0, len(t))
	for _, color := range AllowedColors {
		if _, exists := t[color]; exists {
			result = append(result, color)
		}
	}

	for _, color := range t.Colors() {
		if !IsAllowedColor(color) {
			result = append(result, color)
		}
	}

	return result
}
