// Package bench times every engine over a corpus and checks their answers
// against the brute force reference.
package bench

import (
	"fmt"
	"io"
	"slices"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/autocomplete/pkg/dictionary"
	"github.com/bastiangx/autocomplete/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

// Options control a benchmark or verification run
type Options struct {
	Kinds    []suggest.Kind // defaults to every engine
	Prefixes []string
	K        int
	Repeat   int
	Engine   suggest.Options
}

func (o Options) kinds() []suggest.Kind {
	if len(o.Kinds) == 0 {
		return suggest.Kinds()
	}
	return o.Kinds
}

// Result holds the measurements for one engine
type Result struct {
	Kind      suggest.Kind
	Terms     int
	InitTime  time.Duration
	Queries   int
	AvgQuery  time.Duration
	SizeBytes int
}

// Mismatch records an engine answer that disagrees with the reference
type Mismatch struct {
	Kind   suggest.Kind
	Prefix string
	Want   []suggest.Term
	Got    []suggest.Term
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s %q: want %v, got %v", m.Kind, m.Prefix, m.Want, m.Got)
}

// Run builds each engine over the corpus and times Repeat passes over the prefixes
func Run(corpus *dictionary.Corpus, opts Options) ([]Result, error) {
	repeat := max(opts.Repeat, 1)
	results := make([]Result, 0, len(opts.kinds()))
	for _, kind := range opts.kinds() {
		start := time.Now()
		engine, err := suggest.New(kind, corpus.Words, corpus.Weights, opts.Engine)
		if err != nil {
			return nil, fmt.Errorf("building %s: %w", kind, err)
		}
		initTime := time.Since(start)

		queries := 0
		start = time.Now()
		for range repeat {
			for _, prefix := range opts.Prefixes {
				if _, err := engine.TopMatches(prefix, opts.K); err != nil {
					return nil, fmt.Errorf("%s query %q: %w", kind, prefix, err)
				}
				queries++
			}
		}
		elapsed := time.Since(start)

		result := Result{
			Kind:      kind,
			Terms:     corpus.Len(),
			InitTime:  initTime,
			Queries:   queries,
			SizeBytes: engine.SizeInBytes(),
		}
		if queries > 0 {
			result.AvgQuery = elapsed / time.Duration(queries)
		}
		log.Debug("Benchmarked engine", "kind", kind, "init", initTime, "avg", result.AvgQuery)
		results = append(results, result)
	}
	return results, nil
}

// Verify queries every engine and compares it with BruteForce. HashPrefix is
// only checked for prefixes within its key length.
func Verify(corpus *dictionary.Corpus, opts Options) ([]Mismatch, error) {
	reference, err := suggest.New(suggest.KindBruteForce, corpus.Words, corpus.Weights, opts.Engine)
	if err != nil {
		return nil, fmt.Errorf("building reference: %w", err)
	}
	maxPrefix := opts.Engine.MaxPrefix
	if maxPrefix < 1 {
		maxPrefix = suggest.DefaultMaxPrefix
	}

	var mismatches []Mismatch
	for _, kind := range opts.kinds() {
		if kind == suggest.KindBruteForce {
			continue
		}
		engine, err := suggest.New(kind, corpus.Words, corpus.Weights, opts.Engine)
		if err != nil {
			return nil, fmt.Errorf("building %s: %w", kind, err)
		}
		for _, prefix := range opts.Prefixes {
			if kind == suggest.KindHashPrefix && utf8.RuneCountInString(prefix) > maxPrefix {
				continue
			}
			want, err := reference.TopMatches(prefix, opts.K)
			if err != nil {
				return nil, err
			}
			got, err := engine.TopMatches(prefix, opts.K)
			if err != nil {
				return nil, fmt.Errorf("%s query %q: %w", kind, prefix, err)
			}
			if !agree(want, got, opts.K) {
				mismatches = append(mismatches, Mismatch{Kind: kind, Prefix: prefix, Want: want, Got: got})
			}
		}
	}
	return mismatches, nil
}

// agree reports whether two answers match up to tie order. When the
// reference returned fewer than k terms both must hold the same words.
func agree(want, got []suggest.Term, k int) bool {
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if want[i].Weight != got[i].Weight {
			return false
		}
	}
	if len(want) < k {
		return slices.Equal(sortedWords(want), sortedWords(got))
	}
	return true
}

func sortedWords(terms []suggest.Term) []string {
	words := suggest.Words(terms)
	slices.Sort(words)
	return words
}

// Report writes one line per engine
func Report(w io.Writer, results []Result) {
	fmt.Fprintf(w, "%-12s %10s %14s %12s %12s\n", "engine", "terms", "init", "avg query", "size")
	for _, r := range results {
		fmt.Fprintf(w, "%-12s %10s %14s %12s %12s\n",
			r.Kind,
			humanize.Comma(int64(r.Terms)),
			r.InitTime.Round(time.Microsecond),
			r.AvgQuery,
			humanize.Bytes(uint64(r.SizeBytes)),
		)
	}
}
