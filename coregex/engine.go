package coregex

import (
	"rescan/match"

	crx "github.com/coregx/coregex"
	"github.com/rs/zerolog"
)

// MatcherFactory implements the match.MatcherFactory interface using the
// coregex engine.
type MatcherFactory struct {
	logger zerolog.Logger
}

// NewMatcherFactory creates a match.MatcherFactory backed by coregex.
// Coregex is pure Go and reports capture group positions, so matchers from
// this factory support both whole-match and group streams.
func NewMatcherFactory(logger zerolog.Logger) match.MatcherFactory {
	return &MatcherFactory{logger: logger}
}

// NewMatcher compiles expr into a single-shot matcher.
func (f *MatcherFactory) NewMatcher(expr string, flags match.Flags) (m match.Matcher, err error) {
	re, err := crx.Compile(flagPrefix(flags) + expr)
	if err != nil {
		err = &match.CompileError{Expr: expr, Err: err}
		return
	}

	f.logger.Debug().Str("expr", expr).Msg("Compiled coregex matcher")
	m = &matcher{re: re}
	return
}

// flagPrefix lowers the flag bitmask to coregex's inline flag syntax, which
// is how Go-syntax engines take compile-time options.
func flagPrefix(flags match.Flags) string {
	s := ""
	if flags&match.CaseInsensitive != 0 {
		s += "i"
	}
	if flags&match.MultiLine != 0 {
		s += "m"
	}
	if flags&match.DotAll != 0 {
		s += "s"
	}
	if s == "" {
		return ""
	}
	return "(?" + s + ")"
}

type matcher struct {
	re *crx.Regex
}

// Find runs one leftmost search over text. Coregex reports group pairs the
// same way the standard library does: a nil slice for no match, and -1
// offsets for groups that did not take part in the match.
func (m *matcher) Find(text []byte, maxSpans int) (spans []match.Span, err error) {
	ii := m.re.FindSubmatchIndex(text)
	if ii == nil {
		return
	}

	n := len(ii) / 2
	if n > maxSpans {
		n = maxSpans
	}
	spans = make([]match.Span, 0, n)
	for i := 0; i < n; i++ {
		spans = append(spans, match.Span{Start: ii[2*i], End: ii[2*i+1]})
	}
	return
}

func (m *matcher) GroupCount() int {
	return m.re.NumSubexp()
}

// Close is a no-op: coregex holds no resources outside the garbage collector.
func (m *matcher) Close() {}
