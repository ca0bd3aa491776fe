package suggest

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
)

// BruteForce keeps the corpus unsorted and scans all of it on every query,
// selecting the top k matches with a bounded heap. O(n + m log k) per query
// for m matches. It serves as a reference for the indexed engines.
type BruteForce struct {
	terms []Term
	ready bool
	size  sizeCache
}

// NewBruteForce returns an initialized BruteForce engine.
func NewBruteForce(words []string, weights []float64) (*BruteForce, error) {
	b := &BruteForce{}
	if err := b.Initialize(words, weights); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *BruteForce) Initialize(words []string, weights []float64) error {
	if b.ready {
		return fmt.Errorf("brute force: %w", ErrAlreadyInitialized)
	}
	terms, err := buildTerms(words, weights)
	if err != nil {
		return fmt.Errorf("brute force: %w", err)
	}
	b.terms = terms
	b.ready = true
	log.Debugf("brute force: stored %d terms", len(terms))
	return nil
}

func (b *BruteForce) TopMatches(prefix string, k int) ([]Term, error) {
	if err := checkQuery(b.ready, k); err != nil {
		return nil, fmt.Errorf("brute force: %w", err)
	}
	if k == 0 {
		return []Term{}, nil
	}
	h := newTopK(k)
	for _, t := range b.terms {
		if strings.HasPrefix(t.Word, prefix) {
			h.offer(t)
		}
	}
	return h.drain(), nil
}

func (b *BruteForce) SizeInBytes() int {
	if !b.ready {
		return 0
	}
	return b.size.get(func() int { return sumTermBytes(b.terms) })
}

// SlowBrute scans the whole corpus, fully sorts every match by weight and
// truncates to k. O(n + m log m) per query; kept as the worst case baseline.
type SlowBrute struct {
	terms []Term
	ready bool
	size  sizeCache
}

// NewSlowBrute returns an initialized SlowBrute engine.
func NewSlowBrute(words []string, weights []float64) (*SlowBrute, error) {
	s := &SlowBrute{}
	if err := s.Initialize(words, weights); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SlowBrute) Initialize(words []string, weights []float64) error {
	if s.ready {
		return fmt.Errorf("slow brute: %w", ErrAlreadyInitialized)
	}
	terms, err := buildTerms(words, weights)
	if err != nil {
		return fmt.Errorf("slow brute: %w", err)
	}
	s.terms = terms
	s.ready = true
	log.Debugf("slow brute: stored %d terms", len(terms))
	return nil
}

func (s *SlowBrute) TopMatches(prefix string, k int) ([]Term, error) {
	if err := checkQuery(s.ready, k); err != nil {
		return nil, fmt.Errorf("slow brute: %w", err)
	}
	var matches []Term
	for _, t := range s.terms {
		if strings.HasPrefix(t.Word, prefix) {
			matches = append(matches, t)
		}
	}
	slices.SortStableFunc(matches, ReverseWeightOrder)
	if len(matches) > k {
		matches = matches[:k]
	}
	if matches == nil {
		return []Term{}, nil
	}
	return matches, nil
}

func (s *SlowBrute) SizeInBytes() int {
	if !s.ready {
		return 0
	}
	return s.size.get(func() int { return sumTermBytes(s.terms) })
}

func sumTermBytes(terms []Term) int {
	total := 0
	for _, t := range terms {
		total += termBytes(t)
	}
	return total
}
