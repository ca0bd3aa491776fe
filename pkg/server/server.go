package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/autocomplete/internal/logger"
	"github.com/bastiangx/autocomplete/internal/utils"
	"github.com/bastiangx/autocomplete/pkg/config"
	"github.com/bastiangx/autocomplete/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

var (
	errPrefixTooShort = errors.New("prefix too short")
	errPrefixTooLong  = errors.New("prefix too long")
	errUnknownAction  = errors.New("unknown action")
)

// Options describe the served engine and the request limits
type Options struct {
	Kind   suggest.Kind
	Terms  int
	Config config.ServerConfig
}

// Server answers msgpack completion requests against one engine
type Server struct {
	engine suggest.Autocompletor
	opts   Options
	log    *log.Logger
	dec    *msgpack.Decoder
	out    *bufio.Writer
	enc    *msgpack.Encoder
}

// NewServer creates a server reading requests from in and writing responses to out
func NewServer(engine suggest.Autocompletor, opts Options, in io.Reader, out io.Writer) *Server {
	w := bufio.NewWriter(out)
	return &Server{
		engine: engine,
		opts:   opts,
		log:    logger.New("server"),
		dec:    msgpack.NewDecoder(bufio.NewReader(in)),
		out:    w,
		enc:    msgpack.NewEncoder(w),
	}
}

// Start writes the ready message and serves requests until EOF
func (s *Server) Start() error {
	s.log.Debug("Starting server", "kind", s.opts.Kind, "terms", s.opts.Terms)
	if err := s.send(ReadyMessage{Status: "ready", Kind: string(s.opts.Kind), Terms: s.opts.Terms}); err != nil {
		return err
	}

	for {
		var raw msgpack.RawMessage
		if err := s.dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debug("Input closed, stopping server")
				return nil
			}
			s.log.Errorf("Reading request: %v", err)
			return err
		}
		if err := s.handleRequest(raw); err != nil {
			return err
		}
	}
}

// handleRequest decodes and answers one message; only write failures are returned
func (s *Server) handleRequest(raw msgpack.RawMessage) error {
	var request Request
	if err := msgpack.Unmarshal(raw, &request); err != nil {
		s.log.Errorf("Unmarshaling request: %v", err)
		return s.sendError("", fmt.Errorf("invalid request: %w", err), codeBadRequest)
	}

	switch request.Action {
	case "":
		return s.handleComplete(request)
	case "stats":
		return s.send(StatsResponse{
			ID:        request.ID,
			Kind:      string(s.opts.Kind),
			Terms:     s.opts.Terms,
			SizeBytes: s.engine.SizeInBytes(),
		})
	default:
		return s.sendError(request.ID, fmt.Errorf("%w: %s", errUnknownAction, request.Action), codeBadRequest)
	}
}

func (s *Server) handleComplete(request Request) error {
	start := time.Now()
	matches, err := s.complete(request)
	if err != nil {
		s.log.Debug("Request failed", "id", request.ID, "err", err)
		return s.sendError(request.ID, err, errorCode(err))
	}
	elapsed := time.Since(start)

	ranks := utils.CreateRankList(len(matches))
	suggestions := make([]CompletionSuggestion, len(matches))
	for i, m := range matches {
		suggestions[i] = CompletionSuggestion{Word: m.Word, Rank: ranks[i], Weight: m.Weight}
	}
	return s.send(CompletionResponse{
		ID:          request.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) complete(request Request) ([]suggest.Term, error) {
	if request.Prefix == nil {
		return nil, fmt.Errorf("prefix: %w", suggest.ErrNilArgument)
	}
	prefix := *request.Prefix
	cfg := s.opts.Config

	n := utf8.RuneCountInString(prefix)
	if n < cfg.MinPrefix {
		return nil, fmt.Errorf("%w: %d < %d", errPrefixTooShort, n, cfg.MinPrefix)
	}
	if cfg.MaxPrefix > 0 && n > cfg.MaxPrefix {
		return nil, fmt.Errorf("%w: %d > %d", errPrefixTooLong, n, cfg.MaxPrefix)
	}

	limit := cfg.DefaultLimit
	if request.Limit != nil {
		limit = *request.Limit
	}
	if cfg.MaxLimit > 0 {
		limit = min(limit, cfg.MaxLimit)
	}
	return s.engine.TopMatches(prefix, limit)
}

func errorCode(err error) int {
	switch {
	case errors.Is(err, suggest.ErrInvalidK),
		errors.Is(err, suggest.ErrNilArgument),
		errors.Is(err, errPrefixTooShort),
		errors.Is(err, errPrefixTooLong):
		return codeBadRequest
	default:
		return codeInternal
	}
}

func (s *Server) sendError(id string, err error, code int) error {
	return s.send(CompletionError{ID: id, Error: err.Error(), Code: code})
}

// send encodes one message and flushes it so the client sees it immediately
func (s *Server) send(message any) error {
	if err := s.enc.Encode(message); err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}
	if err := s.out.Flush(); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return nil
}
