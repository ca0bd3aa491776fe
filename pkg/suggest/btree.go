package suggest

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/btree"
)

const btreeDegree = 32

// btreeEntry orders terms by word, breaking ties by corpus position so that
// duplicate words are all kept.
type btreeEntry struct {
	term Term
	seq  int
}

func btreeLess(a, b btreeEntry) bool {
	if a.term.Word != b.term.Word {
		return a.term.Word < b.term.Word
	}
	return a.seq < b.seq
}

// BTree keeps terms in an ordered B-tree and answers a query by ascending
// from the prefix until the first word that no longer carries it.
type BTree struct {
	tree  *btree.BTreeG[btreeEntry]
	ready bool
	size  sizeCache
}

// NewBTree returns an initialized BTree engine.
func NewBTree(words []string, weights []float64) (*BTree, error) {
	b := &BTree{}
	if err := b.Initialize(words, weights); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *BTree) Initialize(words []string, weights []float64) error {
	if b.ready {
		return fmt.Errorf("btree: %w", ErrAlreadyInitialized)
	}
	terms, err := buildTerms(words, weights)
	if err != nil {
		return fmt.Errorf("btree: %w", err)
	}
	tree := btree.NewG[btreeEntry](btreeDegree, btreeLess)
	for i, t := range terms {
		tree.ReplaceOrInsert(btreeEntry{term: t, seq: i})
	}
	b.tree = tree
	b.ready = true
	log.Debugf("btree: inserted %d terms", tree.Len())
	return nil
}

func (b *BTree) TopMatches(prefix string, k int) ([]Term, error) {
	if err := checkQuery(b.ready, k); err != nil {
		return nil, fmt.Errorf("btree: %w", err)
	}
	if k == 0 {
		return []Term{}, nil
	}
	h := newTopK(k)
	pivot := btreeEntry{term: Term{Word: prefix}, seq: -1}
	b.tree.AscendGreaterOrEqual(pivot, func(e btreeEntry) bool {
		if !strings.HasPrefix(e.term.Word, prefix) {
			return false
		}
		h.offer(e.term)
		return true
	})
	return h.drain(), nil
}

func (b *BTree) SizeInBytes() int {
	if !b.ready {
		return 0
	}
	return b.size.get(func() int {
		total := 0
		b.tree.Ascend(func(e btreeEntry) bool {
			total += termBytes(e.term)
			return true
		})
		return total
	})
}
