package match

import (
	"errors"

	"github.com/rs/zerolog"
)

// Pattern is a compiled expression that can be tested against buffers and can
// produce match streams. It is immutable after construction, apart from Close.
type Pattern struct {
	matcher    Matcher
	groupCount int
	flags      Flags
	logger     zerolog.Logger
}

// Compile compiles expr with the given factory. Construction is atomic: on
// error no Pattern exists and no engine resources remain allocated. The
// engine's declared capture group count is captured for later use by group
// streams.
func Compile(logger zerolog.Logger, f MatcherFactory, expr string, flags Flags) (p *Pattern, err error) {
	if expr == "" {
		err = &CompileError{Expr: expr, Err: errors.New("empty expression")}
		return
	}

	m, err := f.NewMatcher(expr, flags)
	if err != nil {
		if _, ok := err.(*CompileError); !ok {
			err = &CompileError{Expr: expr, Err: err}
		}
		return
	}

	p = &Pattern{
		matcher:    m,
		groupCount: m.GroupCount(),
		flags:      flags,
		logger:     logger,
	}
	return
}

// GroupCount returns the number of capture groups the expression declares.
func (p *Pattern) GroupCount() int { return p.groupCount }

// Flags returns the flags the Pattern was compiled with.
func (p *Pattern) Flags() Flags { return p.flags }

// Matches reports whether the expression matches anywhere in text. The error
// is non-nil only when the engine itself failed; "no match" is the (false,
// nil) outcome.
func (p *Pattern) Matches(text []byte) (found bool, err error) {
	if p.matcher == nil {
		err = &EngineError{Err: ErrClosed}
		return
	}

	spans, err := p.matcher.Find(text, 1)
	if err != nil {
		err = &EngineError{Err: err}
		return
	}

	found = spans != nil
	return
}

// AllMatches returns a stream over every non-overlapping whole match in buf,
// scanning left to right. The stream keeps its own copy of buf, so the caller
// may reuse or discard buf immediately.
func (p *Pattern) AllMatches(buf []byte) *MatchStream {
	return &MatchStream{
		pattern: p,
		buf:     append([]byte(nil), buf...),
	}
}

// AllGroupMatches returns a stream of match records, one per non-overlapping
// match, each holding the whole match plus every capture group. The stream
// borrows buf: the caller must keep it alive and unmodified for the stream's
// lifetime.
func (p *Pattern) AllGroupMatches(buf []byte) *GroupStream {
	return &GroupStream{
		pattern: p,
		buf:     buf,
	}
}

// Close releases the underlying matcher and invalidates the Pattern. Streams
// created from the Pattern stop with an error on their next Scan. Close is
// safe to call twice; the second call is a no-op.
func (p *Pattern) Close() {
	if p.matcher == nil {
		return
	}
	p.matcher.Close()
	p.matcher = nil
}
