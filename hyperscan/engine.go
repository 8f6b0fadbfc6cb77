package hyperscan

import (
	"errors"

	"rescan/match"

	hs "github.com/flier/gohs/hyperscan"
	"github.com/rs/zerolog"
)

// ErrMatcherClosed is returned when Find is invoked on a matcher whose
// database has already been released.
var ErrMatcherClosed = errors.New("hyperscan matcher already closed")

// MatcherFactory implements the match.MatcherFactory interface using
// Hyperscan.
type MatcherFactory struct {
	logger zerolog.Logger
	cache  DbCache
}

// NewMatcherFactory creates a match.MatcherFactory backed by Hyperscan.
// Hyperscan does not report capture group positions, so matchers from this
// factory declare zero groups and are only useful for whole-match streams
// and Matches tests. The cache may be nil, in which case every expression is
// compiled from scratch.
func NewMatcherFactory(logger zerolog.Logger, cache DbCache) match.MatcherFactory {
	return &MatcherFactory{logger: logger, cache: cache}
}

func compileFlags(flags match.Flags) hs.CompileFlag {
	// SomLeftMost makes Hyperscan report start-of-match offsets, which cost
	// extra at scan time but are required to slice matches out of the buffer.
	f := hs.SomLeftMost | hs.AllowEmpty
	if flags&match.CaseInsensitive != 0 {
		f |= hs.Caseless
	}
	if flags&match.MultiLine != 0 {
		f |= hs.MultiLine
	}
	if flags&match.DotAll != 0 {
		f |= hs.DotAll
	}
	return f
}

// NewMatcher compiles expr into a one-pattern Hyperscan block database plus
// the scratch space needed to scan with it.
func (f *MatcherFactory) NewMatcher(expr string, flags match.Flags) (m match.Matcher, err error) {
	p := hs.NewPattern(expr, compileFlags(flags))

	var db hs.BlockDatabase
	var cacheID string
	if f.cache != nil {
		cacheID = f.cache.cacheID(p)
		db = f.cache.loadFromCache(cacheID)
	}

	if db == nil {
		db, err = hs.NewBlockDatabase(p)
		if err != nil {
			err = &match.CompileError{Expr: expr, Err: err}
			return
		}
		f.logger.Debug().Str("expr", expr).Msg("Compiled Hyperscan database")
		if f.cache != nil {
			f.cache.saveToCache(cacheID, db)
		}
	} else {
		f.logger.Debug().Str("expr", expr).Msg("Loaded Hyperscan database from cache")
	}

	scratch, err := hs.NewScratch(db)
	if err != nil {
		db.Close()
		err = &match.EngineError{Err: err}
		return
	}

	m = &matcher{db: db, scratch: scratch}
	return
}

type matcher struct {
	db      hs.BlockDatabase
	scratch *hs.Scratch
}

// Find scans text once and reduces Hyperscan's callback stream, which
// reports every match as it completes, to the single leftmost-starting match
// the single-shot contract asks for. Ties on the start offset go to the
// longest match.
func (m *matcher) Find(text []byte, maxSpans int) (spans []match.Span, err error) {
	if m.db == nil {
		err = ErrMatcherClosed
		return
	}

	found := false
	var best match.Span
	handler := func(id uint, from, to uint64, flags uint, context interface{}) error {
		s := match.Span{Start: int(from), End: int(to)}
		if !found || s.Start < best.Start || (s.Start == best.Start && s.End > best.End) {
			best = s
			found = true
		}
		return nil
	}

	err = m.db.Scan(text, m.scratch, handler, nil)
	if err != nil || !found {
		return
	}

	spans = []match.Span{best}
	if maxSpans < 1 {
		spans = spans[:0]
	}
	return
}

// GroupCount always returns zero: Hyperscan has no capture support.
func (m *matcher) GroupCount() int { return 0 }

// Close releases the scratch space and database. Further Find calls fail
// with ErrMatcherClosed.
func (m *matcher) Close() {
	if m.db == nil {
		return
	}
	m.scratch.Free()
	m.db.Close()
	m.scratch = nil
	m.db = nil
}
