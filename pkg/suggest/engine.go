package suggest

import (
	"fmt"
	"strings"
)

// Kind names an Autocompletor implementation.
type Kind string

const (
	KindBruteForce   Kind = "brute"
	KindSlowBrute    Kind = "slowbrute"
	KindBinarySearch Kind = "binary"
	KindHashPrefix   Kind = "hashprefix"
	KindTrie         Kind = "trie"
	KindBTree        Kind = "btree"
)

var kinds = []Kind{
	KindBruteForce,
	KindSlowBrute,
	KindBinarySearch,
	KindHashPrefix,
	KindTrie,
	KindBTree,
}

// Options tunes engine construction. The zero value is valid.
type Options struct {
	// MaxPrefix bounds the prefixes indexed by KindHashPrefix.
	MaxPrefix int
}

// Kinds returns every supported engine kind.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// ParseKind maps a case-insensitive name to its Kind.
func ParseKind(name string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEngine, name)
}

// New builds and initializes the engine of the given kind.
func New(kind Kind, words []string, weights []float64, opts Options) (Autocompletor, error) {
	var engine Autocompletor
	switch kind {
	case KindBruteForce:
		engine = &BruteForce{}
	case KindSlowBrute:
		engine = &SlowBrute{}
	case KindBinarySearch:
		engine = &BinarySearch{}
	case KindHashPrefix:
		engine = &HashPrefixIndex{maxPrefix: opts.MaxPrefix}
	case KindTrie:
		engine = &PatriciaTrie{}
	case KindBTree:
		engine = &BTree{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, kind)
	}
	if err := engine.Initialize(words, weights); err != nil {
		return nil, err
	}
	return engine, nil
}
