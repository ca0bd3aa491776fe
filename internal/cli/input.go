// Package cli reads prefixes line by line and prints the top matches, for
// poking at an engine interactively.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/autocomplete/internal/logger"
	"github.com/bastiangx/autocomplete/internal/utils"
	"github.com/bastiangx/autocomplete/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

var (
	// ErrPrefixTooShort is returned for prefixes under the minimum length
	ErrPrefixTooShort = errors.New("prefix too short")
	// ErrPrefixTooLong is returned for prefixes over the maximum length
	ErrPrefixTooLong = errors.New("prefix too long")
	// ErrFiltered is returned when the input filter rejects a prefix
	ErrFiltered = errors.New("prefix rejected by input filter")
)

var wordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))

// InputHandler processes prefixes from a reader and writes suggestions.
// Prefix length bounds are counted in characters.
type InputHandler struct {
	completer       suggest.Autocompletor
	in              io.Reader
	out             io.Writer
	log             *log.Logger
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	noFilter        bool
}

// NewInputHandler creates a handler over the given engine and streams
func NewInputHandler(completer suggest.Autocompletor, in io.Reader, out io.Writer, minLength, maxLength, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		completer:       completer,
		in:              in,
		out:             out,
		log:             logger.New("cli"),
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
		noFilter:        noFilter,
	}
}

// Start runs the prompt loop until the input is exhausted.
// EOF ends the loop without error.
func (h *InputHandler) Start() error {
	fmt.Fprintln(h.out, "autocomplete CLI")
	fmt.Fprintln(h.out, "type a prefix and press Enter (Ctrl+D to exit):")

	scanner := bufio.NewScanner(h.in)
	for {
		fmt.Fprint(h.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(h.out)
			return scanner.Err()
		}
		prefix := strings.TrimSpace(scanner.Text())
		if prefix == "" {
			continue
		}
		h.handleInput(prefix)
	}
}

// Lookup validates a prefix and queries the engine
func (h *InputHandler) Lookup(prefix string) ([]suggest.Term, error) {
	n := utf8.RuneCountInString(prefix)
	if n < h.minPrefixLength {
		return nil, fmt.Errorf("%w: %q", ErrPrefixTooShort, prefix)
	}
	if h.maxPrefixLength > 0 && n > h.maxPrefixLength {
		return nil, fmt.Errorf("%w: %q", ErrPrefixTooLong, prefix)
	}
	if !h.noFilter && !utils.IsValidInput(prefix) {
		return nil, fmt.Errorf("%w: %q", ErrFiltered, prefix)
	}
	return h.completer.TopMatches(prefix, h.suggestLimit)
}

func (h *InputHandler) handleInput(prefix string) {
	start := time.Now()
	matches, err := h.Lookup(prefix)
	if err != nil {
		h.log.Error("Lookup failed", "err", err)
		return
	}
	h.log.Debugf("Took [ %v ] for prefix '%s'", time.Since(start), prefix)

	if len(matches) == 0 {
		fmt.Fprintf(h.out, "No suggestions for prefix '%s'\n", prefix)
		return
	}

	fmt.Fprintf(h.out, "Found %d suggestions for prefix '%s':\n", len(matches), prefix)
	for i, m := range matches {
		fmt.Fprintf(h.out, "%2d. %-40s (weight: %s)\n", i+1, wordStyle.Render(m.Word), humanize.Commaf(m.Weight))
	}
}
