package suggest

import (
	"fmt"
	"math/bits"
	"slices"
	"testing"
)

func TestFirstAndLastIndexOf(t *testing.T) {
	sorted := []Term{
		{"air", 3}, {"bat", 2}, {"bell", 4}, {"belt", 1}, {"boy", 1}, {"zoo", 9},
	}

	testCases := []struct {
		prefix      string
		first, last int
	}{
		{"", 0, 5},
		{"a", 0, 0},
		{"b", 1, 4},
		{"be", 2, 3},
		{"bel", 2, 3},
		{"bell", 2, 2},
		{"bells", -1, -1},
		{"c", -1, -1},
		{"zoo", 5, 5},
		{"zz", -1, -1},
		{"0", -1, -1},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("prefix_%q", tc.prefix), func(t *testing.T) {
			key := Term{Word: tc.prefix}
			cmp := PrefixOrder(len(tc.prefix))
			if got := FirstIndexOf(sorted, key, cmp); got != tc.first {
				t.Errorf("FirstIndexOf: expected %d, got %d", tc.first, got)
			}
			if got := LastIndexOf(sorted, key, cmp); got != tc.last {
				t.Errorf("LastIndexOf: expected %d, got %d", tc.last, got)
			}
		})
	}
}

func TestIndexOfEmpty(t *testing.T) {
	cmp := func(a, b int) int { return a - b }
	if got := FirstIndexOf(nil, 3, cmp); got != -1 {
		t.Errorf("FirstIndexOf on empty slice: expected -1, got %d", got)
	}
	if got := LastIndexOf([]int{}, 3, cmp); got != -1 {
		t.Errorf("LastIndexOf on empty slice: expected -1, got %d", got)
	}
}

func TestIndexOfRuns(t *testing.T) {
	a := []int{1, 2, 2, 2, 3, 5, 5, 8}
	cmp := func(x, y int) int { return x - y }

	testCases := []struct {
		key, first, last int
	}{
		{1, 0, 0},
		{2, 1, 3},
		{3, 4, 4},
		{4, -1, -1},
		{5, 5, 6},
		{8, 7, 7},
		{0, -1, -1},
		{9, -1, -1},
	}
	for _, tc := range testCases {
		if got := FirstIndexOf(a, tc.key, cmp); got != tc.first {
			t.Errorf("FirstIndexOf(%d): expected %d, got %d", tc.key, tc.first, got)
		}
		if got := LastIndexOf(a, tc.key, cmp); got != tc.last {
			t.Errorf("LastIndexOf(%d): expected %d, got %d", tc.key, tc.last, got)
		}
	}
}

// Both searches must stay logarithmic in comparator calls.
func TestIndexOfComparatorCalls(t *testing.T) {
	for _, n := range []int{1, 2, 7, 100, 1000, 4096} {
		a := make([]int, n)
		for i := range a {
			a[i] = i / 3
		}
		calls := 0
		cmp := func(x, y int) int {
			calls++
			return x - y
		}
		bound := bits.Len(uint(n)) + 1

		for _, key := range []int{-1, 0, n / 6, n / 3, n} {
			calls = 0
			FirstIndexOf(a, key, cmp)
			if calls > bound {
				t.Errorf("FirstIndexOf n=%d key=%d: %d comparisons, bound %d", n, key, calls, bound)
			}
			calls = 0
			LastIndexOf(a, key, cmp)
			if calls > bound {
				t.Errorf("LastIndexOf n=%d key=%d: %d comparisons, bound %d", n, key, calls, bound)
			}
		}
	}
}

func TestIndexOfMatchesLinearScan(t *testing.T) {
	words := []string{"a", "aa", "aab", "ab", "abc", "abd", "b", "ba", "bab", "c"}
	terms := make([]Term, len(words))
	for i, w := range words {
		terms[i] = Term{Word: w}
	}
	slices.SortFunc(terms, LexicalOrder)

	for _, prefix := range []string{"", "a", "aa", "ab", "abc", "b", "ba", "c", "ca", "d"} {
		first, last := -1, -1
		for i, term := range terms {
			if len(term.Word) >= len(prefix) && term.Word[:len(prefix)] == prefix {
				if first < 0 {
					first = i
				}
				last = i
			}
		}
		cmp := PrefixOrder(len(prefix))
		key := Term{Word: prefix}
		if got := FirstIndexOf(terms, key, cmp); got != first {
			t.Errorf("prefix '%s': expected first %d, got %d", prefix, first, got)
		}
		if got := LastIndexOf(terms, key, cmp); got != last {
			t.Errorf("prefix '%s': expected last %d, got %d", prefix, last, got)
		}
	}
}
