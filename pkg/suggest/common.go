package suggest

import (
	"fmt"
	"sync"
	"unicode/utf8"
)

// buildTerms pairs words with weights.
func buildTerms(words []string, weights []float64) ([]Term, error) {
	if words == nil || weights == nil {
		return nil, ErrNilArgument
	}
	if len(words) != len(weights) {
		return nil, fmt.Errorf("%w: %d words, %d weights", ErrLengthMismatch, len(words), len(weights))
	}
	terms := make([]Term, len(words))
	for i, w := range words {
		terms[i] = Term{Word: w, Weight: weights[i]}
	}
	return terms, nil
}

// checkQuery validates the common preconditions of TopMatches.
func checkQuery(ready bool, k int) error {
	if !ready {
		return ErrNotInitialized
	}
	if k < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidK, k)
	}
	return nil
}

// termBytes is the footprint of one stored term.
func termBytes(t Term) int {
	return BytesPerDouble + BytesPerChar*utf8.RuneCountInString(t.Word)
}

// sizeCache memoizes a footprint estimate. Engines are immutable once built,
// so the first computed value stays correct.
type sizeCache struct {
	once sync.Once
	size int
}

func (c *sizeCache) get(compute func() int) int {
	c.once.Do(func() {
		c.size = compute()
	})
	return c.size
}
