package suggest

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// DefaultMaxPrefix is the prefix length indexed by HashPrefixIndex when none
// is configured.
const DefaultMaxPrefix = 10

// HashPrefixIndex maps every prefix of every word, up to MaxPrefix runes and
// including the empty prefix, to the terms carrying it sorted by descending
// weight. A query is a map lookup and a slice copy.
//
// Queries longer than MaxPrefix runes are looked up by their first MaxPrefix
// runes only, so results may include words that do not start with the full
// query. Raise MaxPrefix to trade memory for exactness on long prefixes.
type HashPrefixIndex struct {
	maxPrefix int
	index     map[string][]Term
	ready     bool
	size      sizeCache
}

// NewHashPrefixIndex returns an initialized HashPrefixIndex. A maxPrefix below
// 1 selects DefaultMaxPrefix.
func NewHashPrefixIndex(words []string, weights []float64, maxPrefix int) (*HashPrefixIndex, error) {
	h := &HashPrefixIndex{maxPrefix: maxPrefix}
	if err := h.Initialize(words, weights); err != nil {
		return nil, err
	}
	return h, nil
}

// MaxPrefix returns the longest indexed prefix length in runes.
func (h *HashPrefixIndex) MaxPrefix() int {
	if h.maxPrefix < 1 {
		return DefaultMaxPrefix
	}
	return h.maxPrefix
}

func (h *HashPrefixIndex) Initialize(words []string, weights []float64) error {
	if h.ready {
		return fmt.Errorf("hash prefix: %w", ErrAlreadyInitialized)
	}
	terms, err := buildTerms(words, weights)
	if err != nil {
		return fmt.Errorf("hash prefix: %w", err)
	}
	maxPrefix := h.MaxPrefix()
	index := make(map[string][]Term)
	for _, t := range terms {
		eachPrefix(t.Word, maxPrefix, func(p string) {
			index[p] = append(index[p], t)
		})
	}
	for _, list := range index {
		slices.SortStableFunc(list, ReverseWeightOrder)
	}
	h.maxPrefix = maxPrefix
	h.index = index
	h.ready = true
	log.Debugf("hash prefix: indexed %d terms under %d prefixes (max %d runes)", len(terms), len(index), maxPrefix)
	return nil
}

func (h *HashPrefixIndex) TopMatches(prefix string, k int) ([]Term, error) {
	if err := checkQuery(h.ready, k); err != nil {
		return nil, fmt.Errorf("hash prefix: %w", err)
	}
	list, ok := h.index[truncateRunes(prefix, h.maxPrefix)]
	if !ok || k == 0 {
		return []Term{}, nil
	}
	return slices.Clone(list[:min(k, len(list))]), nil
}

// SizeInBytes counts every term once per prefix bucket it appears in, plus
// the characters of every key, so it grows with MaxPrefix.
func (h *HashPrefixIndex) SizeInBytes() int {
	if !h.ready {
		return 0
	}
	return h.size.get(func() int {
		total := 0
		for key, list := range h.index {
			total += BytesPerChar * utf8.RuneCountInString(key)
			total += sumTermBytes(list)
		}
		return total
	})
}

// eachPrefix calls fn with the empty string and every prefix of word of
// 1..min(runes, limit) runes.
func eachPrefix(word string, limit int, fn func(string)) {
	fn("")
	n := 0
	for i := range word {
		if i == 0 {
			continue
		}
		n++ // word[:i] holds n runes
		if n > limit {
			return
		}
		fn(word[:i])
	}
	if word != "" && n < limit {
		fn(word)
	}
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
