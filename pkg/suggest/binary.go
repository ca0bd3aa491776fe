package suggest

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
)

// BinarySearch sorts the corpus lexically once. A query binary searches the
// contiguous run of words sharing the prefix and feeds it through a bounded
// heap: O(n log n) to build, O(log n + m log k) per query.
type BinarySearch struct {
	terms []Term
	ready bool
	size  sizeCache
}

// NewBinarySearch returns an initialized BinarySearch engine.
func NewBinarySearch(words []string, weights []float64) (*BinarySearch, error) {
	b := &BinarySearch{}
	if err := b.Initialize(words, weights); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *BinarySearch) Initialize(words []string, weights []float64) error {
	if b.ready {
		return fmt.Errorf("binary search: %w", ErrAlreadyInitialized)
	}
	terms, err := buildTerms(words, weights)
	if err != nil {
		return fmt.Errorf("binary search: %w", err)
	}
	slices.SortStableFunc(terms, LexicalOrder)
	b.terms = terms
	b.ready = true
	log.Debugf("binary search: sorted %d terms", len(terms))
	return nil
}

// Range returns the inclusive bounds of the run of terms whose words start
// with prefix, or -1, -1 when there are none.
func (b *BinarySearch) Range(prefix string) (first, last int) {
	key := Term{Word: prefix}
	order := PrefixOrder(len(prefix))
	first = FirstIndexOf(b.terms, key, order)
	if first < 0 {
		return -1, -1
	}
	return first, LastIndexOf(b.terms, key, order)
}

func (b *BinarySearch) TopMatches(prefix string, k int) ([]Term, error) {
	if err := checkQuery(b.ready, k); err != nil {
		return nil, fmt.Errorf("binary search: %w", err)
	}
	if k == 0 {
		return []Term{}, nil
	}
	first, last := b.Range(prefix)
	if first < 0 {
		return []Term{}, nil
	}
	h := newTopK(k)
	for _, t := range b.terms[first : last+1] {
		// results must satisfy HasPrefix whatever the range bounds say
		if !strings.HasPrefix(t.Word, prefix) {
			continue
		}
		h.offer(t)
	}
	return h.drain(), nil
}

func (b *BinarySearch) SizeInBytes() int {
	if !b.ready {
		return 0
	}
	return b.size.get(func() int { return sumTermBytes(b.terms) })
}
