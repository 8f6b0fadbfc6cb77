package match

// absSpan translates a span reported relative to the suffix starting at pos
// back into absolute coordinates in the original buffer. Spans of groups that
// did not take part in the match (negative offsets) pass through unchanged.
func absSpan(s Span, pos int) Span {
	if s.Start < 0 {
		return s
	}
	return Span{Start: s.Start + pos, End: s.End + pos}
}

// advance returns the cursor position for the next step after a match whose
// suffix-relative whole-match span starts at relStart. The cursor always
// moves one byte past the match's start, not its end, so the streams
// terminate even on zero-width matches. A later match may therefore begin
// inside an earlier match's span, as long as it begins after the skipped
// position.
func advance(pos, relStart, bufLen int) int {
	pos += relStart + 1
	if pos > bufLen {
		pos = bufLen
	}
	return pos
}

// MatchStream iterates every non-overlapping whole match of a Pattern over a
// buffer, left to right. It is lazy, finite and one-pass: once exhausted it
// cannot be restarted, and a new stream must be created to re-scan.
//
// Zero-width matches are emitted as empty slices; a pattern that matches only
// the empty string yields one empty match per byte position.
type MatchStream struct {
	pattern *Pattern
	buf     []byte
	pos     int
	cur     []byte
	err     error
	done    bool
}

// Scan advances the stream to the next match, which is then available from
// Match. It returns false when the buffer is exhausted, when the engine finds
// no match in the remaining suffix, or when the engine fails; Err tells the
// failure case apart from normal exhaustion.
func (s *MatchStream) Scan() bool {
	if s.done {
		return false
	}
	if s.pos >= len(s.buf) {
		s.done = true
		return false
	}
	if s.pattern.matcher == nil {
		s.err = &EngineError{Err: ErrClosed}
		s.done = true
		return false
	}

	spans, err := s.pattern.matcher.Find(s.buf[s.pos:], 1)
	if err != nil {
		s.pattern.logger.Debug().Err(err).Int("offset", s.pos).Msg("match stream stopped on engine error")
		s.err = &EngineError{Err: err}
		s.done = true
		return false
	}
	if spans == nil {
		s.done = true
		return false
	}

	abs := absSpan(spans[0], s.pos)
	s.cur = s.buf[abs.Start:abs.End]
	s.pos = advance(s.pos, spans[0].Start, len(s.buf))
	return true
}

// Match returns the bytes of the match found by the last successful Scan. The
// returned slice aliases the stream's private buffer copy and stays valid
// across further Scan calls.
func (s *MatchStream) Match() []byte { return s.cur }

// Err returns the engine error that stopped iteration, or nil if the stream
// ended by running out of matches or input.
func (s *MatchStream) Err() error { return s.err }

// MatchGroup is one captured range of a match: its absolute span in the
// original buffer and the bytes it covers. A capture group that did not take
// part in the match has Start and End set to -1 and nil Data.
type MatchGroup struct {
	Span
	Data []byte
}

// MatchRecord holds the result of one match. Groups[0] is the whole match;
// Groups[1:] are the capture groups in the expression's declaration order, so
// a record always has exactly GroupCount+1 entries. Each Scan produces a
// fresh record, which the caller owns.
type MatchRecord struct {
	Groups []MatchGroup
}

// GroupStream iterates every non-overlapping match of a Pattern over a
// buffer, producing a MatchRecord with capture group spans per match. Like
// MatchStream it is lazy, finite and one-pass, and uses the same
// one-past-the-match-start advance policy.
//
// Two deliberate differences from MatchStream: the buffer is borrowed rather
// than copied, and a zero-width whole match ends the stream without emitting
// a record instead of being emitted as an empty match.
type GroupStream struct {
	pattern *Pattern
	buf     []byte
	pos     int
	cur     *MatchRecord
	err     error
	done    bool
}

// Scan advances the stream to the next match record, which is then available
// from Record. It returns false on exhaustion or engine failure; Err tells
// the two apart.
func (s *GroupStream) Scan() bool {
	if s.done {
		return false
	}
	if s.pos >= len(s.buf) {
		s.done = true
		return false
	}
	if s.pattern.matcher == nil {
		s.err = &EngineError{Err: ErrClosed}
		s.done = true
		return false
	}

	spans, err := s.pattern.matcher.Find(s.buf[s.pos:], s.pattern.groupCount+1)
	if err != nil {
		s.err = &EngineError{Err: err}
		s.done = true
		return false
	}
	if spans == nil {
		s.done = true
		return false
	}
	if spans[0].Start == spans[0].End {
		// A zero-width whole match carries no capturable content and ends
		// the stream.
		s.done = true
		return false
	}

	rec := &MatchRecord{Groups: make([]MatchGroup, 0, len(spans))}
	for _, sp := range spans {
		a := absSpan(sp, s.pos)
		g := MatchGroup{Span: a}
		if a.Start >= 0 {
			g.Data = s.buf[a.Start:a.End]
		}
		rec.Groups = append(rec.Groups, g)
	}

	s.cur = rec
	s.pos = advance(s.pos, spans[0].Start, len(s.buf))
	return true
}

// Record returns the record produced by the last successful Scan.
func (s *GroupStream) Record() *MatchRecord { return s.cur }

// Err returns the engine error that stopped iteration, or nil if the stream
// ended by running out of matches or input.
func (s *GroupStream) Err() error { return s.err }
