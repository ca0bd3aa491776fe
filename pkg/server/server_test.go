package server

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bastiangx/autocomplete/pkg/config"
	"github.com/bastiangx/autocomplete/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

func init() {
	log.SetLevel(log.FatalLevel)
}

func testOptions() Options {
	return Options{
		Kind:  suggest.KindBinarySearch,
		Terms: 4,
		Config: config.ServerConfig{
			MaxLimit:     3,
			MinPrefix:    0,
			MaxPrefix:    4,
			DefaultLimit: 2,
		},
	}
}

// runServer encodes the requests, serves them and returns a decoder over the output
func runServer(t *testing.T, requests ...any) *msgpack.Decoder {
	t.Helper()
	engine, err := suggest.New(suggest.KindBinarySearch,
		[]string{"air", "bat", "bell", "boy"}, []float64{3, 2, 4, 1}, suggest.Options{})
	if err != nil {
		t.Fatalf("failed to build engine: %v", err)
	}

	var in, out bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, r := range requests {
		if err := enc.Encode(r); err != nil {
			t.Fatalf("encoding request: %v", err)
		}
	}

	if err := NewServer(engine, testOptions(), &in, &out).Start(); err != nil {
		t.Fatalf("Start returned %v", err)
	}

	dec := msgpack.NewDecoder(&out)
	var ready ReadyMessage
	if err := dec.Decode(&ready); err != nil {
		t.Fatalf("decoding ready message: %v", err)
	}
	if ready.Status != "ready" || ready.Kind != "binary" || ready.Terms != 4 {
		t.Fatalf("unexpected ready message %+v", ready)
	}
	return dec
}

func decodeInto[T any](t *testing.T, dec *msgpack.Decoder) T {
	t.Helper()
	var v T
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return v
}

func TestCompletion(t *testing.T) {
	dec := runServer(t,
		map[string]any{"id": "r1", "p": "b", "l": 2},
		map[string]any{"id": "r2", "p": "b"},
		map[string]any{"id": "r3", "p": "", "l": 50},
		map[string]any{"id": "r4", "p": "zz"},
		map[string]any{"id": "r5", "p": "b", "l": 0},
		map[string]any{"id": "r6", "p": "b", "l": nil},
	)

	resp := decodeInto[CompletionResponse](t, dec)
	if resp.ID != "r1" || resp.Count != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
	want := []CompletionSuggestion{{"bell", 1, 4}, {"bat", 2, 2}}
	for i, s := range resp.Suggestions {
		if s != want[i] {
			t.Errorf("suggestion %d: expected %+v, got %+v", i, want[i], s)
		}
	}

	// limit falls back to the default of 2
	if resp := decodeInto[CompletionResponse](t, dec); resp.ID != "r2" || resp.Count != 2 {
		t.Errorf("expected 2 default results, got %+v", resp)
	}
	// limit clamps to the maximum of 3
	if resp := decodeInto[CompletionResponse](t, dec); resp.ID != "r3" || resp.Count != 3 {
		t.Errorf("expected 3 clamped results, got %+v", resp)
	}
	if resp := decodeInto[CompletionResponse](t, dec); resp.ID != "r4" || resp.Count != 0 || len(resp.Suggestions) != 0 {
		t.Errorf("expected no results, got %+v", resp)
	}
	// an explicit zero limit asks for nothing
	if resp := decodeInto[CompletionResponse](t, dec); resp.ID != "r5" || resp.Count != 0 || len(resp.Suggestions) != 0 {
		t.Errorf("expected an empty result for limit 0, got %+v", resp)
	}
	if resp := decodeInto[CompletionResponse](t, dec); resp.ID != "r6" || resp.Count != 2 {
		t.Errorf("nil limit should use the default of 2, got %+v", resp)
	}
}

func TestRequestStructLimit(t *testing.T) {
	prefix, zero := "b", 0
	dec := runServer(t,
		Request{ID: "z", Prefix: &prefix, Limit: &zero},
		Request{ID: "d", Prefix: &prefix},
	)
	if resp := decodeInto[CompletionResponse](t, dec); resp.ID != "z" || resp.Count != 0 {
		t.Errorf("expected an empty result, got %+v", resp)
	}
	if resp := decodeInto[CompletionResponse](t, dec); resp.ID != "d" || resp.Count != 2 {
		t.Errorf("expected default limit results, got %+v", resp)
	}
}

func TestRequestErrors(t *testing.T) {
	dec := runServer(t,
		map[string]any{"id": "e1", "p": nil},
		map[string]any{"id": "e2", "l": 1},
		map[string]any{"id": "e3", "p": "b", "l": -1},
		map[string]any{"id": "e4", "p": "bellows"},
		map[string]any{"id": "e5", "action": "reload"},
		"not a map",
		map[string]any{"id": "ok", "p": "a"},
	)

	for _, id := range []string{"e1", "e2", "e3", "e4", "e5", ""} {
		resp := decodeInto[CompletionError](t, dec)
		if resp.ID != id || resp.Code != codeBadRequest {
			t.Errorf("expected 400 for %q, got %+v", id, resp)
		}
	}
	if resp := decodeInto[CompletionResponse](t, dec); resp.ID != "ok" || resp.Count != 1 {
		t.Errorf("server should keep serving after errors, got %+v", resp)
	}
}

func TestNilPrefixMessage(t *testing.T) {
	dec := runServer(t, map[string]any{"id": "n", "p": nil})
	resp := decodeInto[CompletionError](t, dec)
	if !strings.Contains(resp.Error, suggest.ErrNilArgument.Error()) {
		t.Errorf("expected nil argument error, got %q", resp.Error)
	}
}

func TestStats(t *testing.T) {
	dec := runServer(t, map[string]any{"id": "s1", "action": "stats"})
	resp := decodeInto[StatsResponse](t, dec)
	if resp.ID != "s1" || resp.Kind != "binary" || resp.Terms != 4 || resp.SizeBytes != 58 {
		t.Errorf("unexpected stats %+v", resp)
	}
}

func TestStartEmptyInput(t *testing.T) {
	runServer(t)
}
