package suggest

import (
	"cmp"
	"strconv"
	"strings"
)

// Term is a word paired with its weight. Terms are values and never mutated
// once built.
type Term struct {
	Word   string
	Weight float64
}

// NewTerm returns the term for word with the given weight.
func NewTerm(word string, weight float64) Term {
	return Term{Word: word, Weight: weight}
}

func (t Term) String() string {
	return "(" + t.Word + ", " + strconv.FormatFloat(t.Weight, 'g', -1, 64) + ")"
}

// LexicalOrder compares terms by word only.
func LexicalOrder(a, b Term) int {
	return strings.Compare(a.Word, b.Word)
}

// WeightOrder compares terms by ascending weight.
func WeightOrder(a, b Term) int {
	return cmp.Compare(a.Weight, b.Weight)
}

// ReverseWeightOrder compares terms by descending weight.
func ReverseWeightOrder(a, b Term) int {
	return cmp.Compare(b.Weight, a.Weight)
}

// PrefixOrder returns a comparator that looks only at the first n bytes of
// each word. Two terms compare equal when their words agree on those bytes,
// or on the whole word when it is shorter than n.
//
// The ordering is a coarsening of LexicalOrder, so in a lexically sorted slice
// every run of terms sharing an n byte prefix is contiguous.
func PrefixOrder(n int) func(a, b Term) int {
	if n < 0 {
		n = 0
	}
	return func(a, b Term) int {
		return strings.Compare(truncate(a.Word, n), truncate(b.Word, n))
	}
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// Words returns the words of terms in order.
func Words(terms []Term) []string {
	words := make([]string, len(terms))
	for i, t := range terms {
		words[i] = t.Word
	}
	return words
}
