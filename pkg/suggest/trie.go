package suggest

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// PatriciaTrie stores terms in a patricia trie keyed by word. A query walks
// the subtree under the prefix and selects the top k with a bounded heap.
type PatriciaTrie struct {
	trie *patricia.Trie
	// empty holds terms with an empty word, which the trie cannot key.
	empty []Term
	ready bool
	size  sizeCache
}

// NewPatriciaTrie returns an initialized PatriciaTrie engine.
func NewPatriciaTrie(words []string, weights []float64) (*PatriciaTrie, error) {
	p := &PatriciaTrie{}
	if err := p.Initialize(words, weights); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *PatriciaTrie) Initialize(words []string, weights []float64) error {
	if p.ready {
		return fmt.Errorf("patricia trie: %w", ErrAlreadyInitialized)
	}
	terms, err := buildTerms(words, weights)
	if err != nil {
		return fmt.Errorf("patricia trie: %w", err)
	}
	trie := patricia.NewTrie()
	for _, t := range terms {
		if t.Word == "" {
			p.empty = append(p.empty, t)
			continue
		}
		key := patricia.Prefix(t.Word)
		// duplicate words share a key and keep every weight
		if item := trie.Get(key); item != nil {
			trie.Set(key, append(item.([]Term), t))
		} else {
			trie.Insert(key, []Term{t})
		}
	}
	// walks sort sparse child lists in place; sorting them once here keeps
	// later walks read-only
	_ = trie.Visit(func(patricia.Prefix, patricia.Item) error { return nil })
	p.trie = trie
	p.ready = true
	log.Debugf("patricia trie: inserted %d terms", len(terms))
	return nil
}

func (p *PatriciaTrie) TopMatches(prefix string, k int) ([]Term, error) {
	if err := checkQuery(p.ready, k); err != nil {
		return nil, fmt.Errorf("patricia trie: %w", err)
	}
	if k == 0 {
		return []Term{}, nil
	}
	h := newTopK(k)
	visit := func(key patricia.Prefix, item patricia.Item) error {
		terms, ok := item.([]Term)
		if !ok {
			return nil
		}
		for _, t := range terms {
			if strings.HasPrefix(t.Word, prefix) {
				h.offer(t)
			}
		}
		return nil
	}
	var err error
	if prefix == "" {
		for _, t := range p.empty {
			h.offer(t)
		}
		err = p.trie.Visit(visit)
	} else {
		err = p.trie.VisitSubtree(patricia.Prefix(prefix), visit)
	}
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
		return nil, fmt.Errorf("patricia trie: visit %q: %w", prefix, err)
	}
	return h.drain(), nil
}

// SizeInBytes counts each stored term and the characters of each distinct key.
func (p *PatriciaTrie) SizeInBytes() int {
	if !p.ready {
		return 0
	}
	return p.size.get(func() int {
		total := sumTermBytes(p.empty)
		_ = p.trie.Visit(func(key patricia.Prefix, item patricia.Item) error {
			terms, ok := item.([]Term)
			if !ok {
				return nil
			}
			total += BytesPerChar * utf8.RuneCount(key)
			total += sumTermBytes(terms)
			return nil
		})
		return total
	})
}
