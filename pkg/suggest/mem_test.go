//go:build test

package suggest

import (
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

var memPatterns = [][]string{
	{"a", "ab", "abc", "abca", "abcab"},
	{"b", "bb", "bba", "bbac"},
	{"c", "cc", "ccc", "cccc", "ccccc", "cccccc"},
	{"", "x", "xyz"},
}

// heapDelta returns bytes retained after GC since the baseline
func heapDelta(baseline runtime.MemStats) int64 {
	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)
	return int64(final.Alloc) - int64(baseline.Alloc)
}

func TestMemoryLeakBasic(t *testing.T) {
	words, weights := randomCorpus(rand.New(rand.NewSource(11)), 20000)
	for _, kind := range Kinds() {
		for _, iterations := range []int{100, 1000} {
			t.Run(fmt.Sprintf("%s/iterations_%d", kind, iterations), func(t *testing.T) {
				engine, err := New(kind, words, weights, Options{})
				if err != nil {
					t.Fatalf("build failed: %v", err)
				}

				var baseline runtime.MemStats
				runtime.GC()
				runtime.ReadMemStats(&baseline)
				baselineGoroutines := runtime.NumGoroutine()

				ops := 0
				for range iterations {
					for _, pattern := range memPatterns {
						for _, prefix := range pattern {
							if _, err := engine.TopMatches(prefix, 10); err != nil {
								t.Fatalf("query %q: %v", prefix, err)
							}
							ops++
						}
					}
				}

				memPerOp := float64(heapDelta(baseline)) / float64(ops)
				goroutineDelta := runtime.NumGoroutine() - baselineGoroutines
				t.Logf("ops=%d mem_per_op=%.2f goroutine_delta=%d", ops, memPerOp, goroutineDelta)

				if memPerOp > 1000 {
					t.Errorf("excessive memory retained per operation: %.2f bytes", memPerOp)
				}
				if goroutineDelta > 2 {
					t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
				}
				runtime.KeepAlive(engine)
			})
		}
	}
}

func TestMemoryLeakConcurrent(t *testing.T) {
	words, weights := randomCorpus(rand.New(rand.NewSource(12)), 20000)
	configs := []struct {
		workers             int
		iterationsPerWorker int
	}{
		{workers: 1, iterationsPerWorker: 400},
		{workers: 4, iterationsPerWorker: 100},
		{workers: 8, iterationsPerWorker: 50},
	}

	for _, kind := range Kinds() {
		engine, err := New(kind, words, weights, Options{})
		if err != nil {
			t.Fatalf("%s: build failed: %v", kind, err)
		}
		for _, config := range configs {
			t.Run(fmt.Sprintf("%s/workers_%d", kind, config.workers), func(t *testing.T) {
				var baseline runtime.MemStats
				runtime.GC()
				runtime.ReadMemStats(&baseline)

				var ops atomic.Int64
				var wg sync.WaitGroup
				for range config.workers {
					wg.Add(1)
					go func() {
						defer wg.Done()
						for range config.iterationsPerWorker {
							for _, pattern := range memPatterns {
								for _, prefix := range pattern {
									engine.TopMatches(prefix, 10)
									ops.Add(1)
								}
							}
						}
					}()
				}
				wg.Wait()

				memPerOp := float64(heapDelta(baseline)) / float64(ops.Load())
				t.Logf("ops=%d mem_per_op=%.2f", ops.Load(), memPerOp)
				if memPerOp > 1000 {
					t.Errorf("excessive memory retained per operation: %.2f bytes", memPerOp)
				}
			})
		}
	}
}
