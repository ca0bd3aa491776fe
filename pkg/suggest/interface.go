// Package suggest is the core, providing the autocomplete engines that answer
// top-k prefix queries over a static corpus of weighted words.
//
// Every engine implements Autocompletor and trades preprocessing time and
// space for query speed in a different way:
//
//	BruteForce       no index, linear scan and bounded heap per query
//	SlowBrute        no index, linear scan and full sort per query
//	BinarySearch     lexically sorted slice, binary searched prefix range
//	HashPrefixIndex  every prefix up to MaxPrefix mapped to a weight sorted list
//	PatriciaTrie     patricia trie keyed by word, subtree walk per query
//	BTree            ordered B-tree, ascending scan from the prefix
//
// Engines are built once by Initialize and are read-only afterwards, so one
// instance may serve queries from many goroutines.
package suggest

// Footprint constants used by SizeInBytes.
const (
	BytesPerDouble = 8
	BytesPerChar   = 2
)

// Autocompletor defines the interface for top-k prefix completion engines
type Autocompletor interface {
	// Initialize builds the engine from parallel words and weights. It fails
	// with ErrNilArgument when either is nil and ErrLengthMismatch when their
	// lengths differ.
	Initialize(words []string, weights []float64) error

	// TopMatches returns up to k terms whose word starts with prefix, in
	// descending weight order. Ties are returned in no particular order.
	// k == 0 yields an empty result and k < 0 fails with ErrInvalidK.
	TopMatches(prefix string, k int) ([]Term, error)

	// SizeInBytes estimates the memory held by the engine's index. The value
	// is computed on first call and cached.
	SizeInBytes() int
}
