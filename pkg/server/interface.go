/*
Package server implements msgpack IPC for autocomplete engines.

The server reads a stream of msgpack maps from its input and writes one msgpack
map per request to its output. Logs go to stderr so the output stays a clean
msgpack stream.

# IPC

Once the engine is ready the server writes:

	{"status": "ready", "kind": "binary", "terms": 3}

Completion requests carry an ID, a prefix and an optional limit:

	{"id": "req_001", "p": "be", "l": 24}

The response lists matches by descending weight with 1-based ranks, the count
and the query time in microseconds:

	{"id": "req_001", "s": [{"w": "bell", "r": 1, "x": 4}, {"w": "bat", "r": 2, "x": 2}], "c": 2, "t": 12}

A missing or nil limit falls back to the configured default, a limit of 0
returns no suggestions, and larger limits are clamped to the configured maximum. A nil prefix, a negative limit or a prefix
outside the configured length bounds is answered with code 400:

	{"id": "req_002", "e": "nil argument", "c": 400}

Engine statistics are available through an action request:

	{"id": "stats_001", "action": "stats"}
	{"id": "stats_001", "kind": "binary", "terms": 3, "size_bytes": 58}

Requests are handled one at a time in arrival order. The server returns when
its input reaches EOF.
*/
package server

// Request is any message read from the client. Completion requests leave
// Action empty.
type Request struct {
	ID     string  `msgpack:"id"`
	Action string  `msgpack:"action,omitempty"`
	Prefix *string `msgpack:"p"`
	Limit  *int    `msgpack:"l,omitempty"`
}

// CompletionSuggestion is one ranked match
type CompletionSuggestion struct {
	Word   string  `msgpack:"w"`
	Rank   uint16  `msgpack:"r"`
	Weight float64 `msgpack:"x"`
}

// CompletionResponse answers a completion request
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
}

// StatsResponse answers the "stats" action
type StatsResponse struct {
	ID        string `msgpack:"id"`
	Kind      string `msgpack:"kind"`
	Terms     int    `msgpack:"terms"`
	SizeBytes int    `msgpack:"size_bytes"`
}

// ReadyMessage is written once before any request is read
type ReadyMessage struct {
	Status string `msgpack:"status"`
	Kind   string `msgpack:"kind"`
	Terms  int    `msgpack:"terms"`
}

// CompletionError holds basic error information for failed requests
type CompletionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

const (
	codeBadRequest = 400
	codeInternal   = 500
)
