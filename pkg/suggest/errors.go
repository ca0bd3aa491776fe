package suggest

import "errors"

var (
	// ErrNilArgument is returned when a required input is absent.
	ErrNilArgument = errors.New("one or more arguments nil")
	// ErrInvalidK is returned for a negative result count.
	ErrInvalidK = errors.New("illegal value of k")
	// ErrLengthMismatch is returned when words and weights differ in length.
	ErrLengthMismatch = errors.New("words and weights differ in length")
	// ErrNotInitialized is returned when an engine is queried before Initialize.
	ErrNotInitialized = errors.New("autocompletor not initialized")
	// ErrAlreadyInitialized is returned by a second call to Initialize.
	ErrAlreadyInitialized = errors.New("autocompletor already initialized")
	// ErrUnknownEngine is returned by New and ParseKind for unrecognised kinds.
	ErrUnknownEngine = errors.New("unknown engine kind")
)
