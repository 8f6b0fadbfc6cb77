package match

import (
	"errors"
	"fmt"
)

// Flags selects compile-time options for an expression. Flags are passed
// explicitly when compiling a Pattern; there is no process-wide flag state.
type Flags uint

const (
	// CaseInsensitive makes letters match regardless of case.
	CaseInsensitive Flags = 1 << iota

	// MultiLine makes ^ and $ also match at line boundaries rather than only
	// at the start and end of the buffer.
	MultiLine

	// DotAll makes . also match newline bytes.
	DotAll
)

// Span is a half-open [Start, End) byte range within a buffer.
type Span struct {
	Start int
	End   int
}

// MatcherFactory is an interface to a factory that can compile expressions
// into single-shot matchers, such as coregex or Hyperscan.
type MatcherFactory interface {
	NewMatcher(expr string, flags Flags) (Matcher, error)
}

// Matcher is a compiled expression that can run a single-shot search.
//
// A Matcher may hold engine-side state (such as scratch memory) that is not
// safe for concurrent use. Callers that share a Matcher across goroutines
// must synchronize externally.
type Matcher interface {
	// Find runs the matcher once against text and returns the first match as
	// spans relative to text: span 0 is the whole match, spans 1..N are the
	// capture groups in declaration order, truncated to maxSpans entries.
	// A group that did not take part in the match has Start and End set to -1.
	// Find returns (nil, nil) when nothing matches. A non-nil error means the
	// engine itself failed, which is a different outcome than no match.
	Find(text []byte, maxSpans int) (spans []Span, err error)

	// GroupCount returns the number of capture groups the expression declares.
	GroupCount() int

	// Close releases engine resources held by the matcher.
	Close()
}

// ErrClosed is returned wrapped in an EngineError when a Pattern is used
// after Close.
var ErrClosed = errors.New("pattern already closed")

// CompileError means the engine rejected the expression. It is fatal to the
// Pattern being constructed and not retryable without changing the expression.
type CompileError struct {
	Expr string
	Err  error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compiling expression %q: %v", e.Expr, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// EngineError means an execution failed for a reason other than the absence
// of a match, such as resource exhaustion inside the engine.
type EngineError struct {
	Err error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("regex engine error: %v", e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }
