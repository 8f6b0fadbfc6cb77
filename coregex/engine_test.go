package coregex

import (
	"errors"
	"testing"

	"rescan/match"
	"rescan/testutils"

	"github.com/stretchr/testify/assert"
)

func newTestMatcher(t *testing.T, expr string, flags match.Flags) match.Matcher {
	m, err := NewMatcherFactory(testutils.NewTestLogger(t)).NewMatcher(expr, flags)
	if err != nil {
		t.Fatalf("got unexpected error: %s", err)
	}
	return m
}

func TestNewMatcherRejectsBadExpression(t *testing.T) {
	assert := assert.New(t)

	// Act
	_, err := NewMatcherFactory(testutils.NewTestLogger(t)).NewMatcher("(", 0)

	// Assert
	var ce *match.CompileError
	assert.True(errors.As(err, &ce))
	assert.Equal("(", ce.Expr)
}

func TestFindReturnsSuffixRelativeSpans(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	m := newTestMatcher(t, "(a)(b+)", 0)
	defer m.Close()

	// Act
	spans, err := m.Find([]byte("xxabbby"), 3)

	// Assert
	assert.Nil(err)
	assert.Equal([]match.Span{
		{Start: 2, End: 6},
		{Start: 2, End: 3},
		{Start: 3, End: 6},
	}, spans)
}

func TestFindReportsNoMatchAsNilNil(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	m := newTestMatcher(t, "ab", 0)
	defer m.Close()

	// Act
	spans, err := m.Find([]byte("xyz"), 1)

	// Assert
	assert.Nil(err)
	assert.Nil(spans)
}

func TestFindTruncatesToMaxSpans(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	m := newTestMatcher(t, "(a)(b)", 0)
	defer m.Close()

	// Act
	spans, err := m.Find([]byte("ab"), 1)

	// Assert
	assert.Nil(err)
	assert.Equal([]match.Span{{Start: 0, End: 2}}, spans)
}

func TestFindNonParticipatingGroupKeepsNegativeOffsets(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	m := newTestMatcher(t, "(a)|(b)", 0)
	defer m.Close()

	// Act
	spans, err := m.Find([]byte("zzb"), 3)

	// Assert
	assert.Nil(err)
	assert.Equal([]match.Span{
		{Start: 2, End: 3},
		{Start: -1, End: -1},
		{Start: 2, End: 3},
	}, spans)
}

func TestGroupCount(t *testing.T) {
	assert := assert.New(t)

	m := newTestMatcher(t, "(a)((b)c)", 0)
	defer m.Close()

	assert.Equal(3, m.GroupCount())
}

func TestCaseInsensitiveFlag(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	m := newTestMatcher(t, "abc", match.CaseInsensitive)
	defer m.Close()

	// Act
	spans, err := m.Find([]byte("xxABCyy"), 1)

	// Assert
	assert.Nil(err)
	assert.Equal([]match.Span{{Start: 2, End: 5}}, spans)
}

func TestDotAllFlag(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	m := newTestMatcher(t, "a.c", match.DotAll)
	defer m.Close()

	// Act
	spans, err := m.Find([]byte("a\nc"), 1)

	// Assert
	assert.Nil(err)
	assert.Equal([]match.Span{{Start: 0, End: 3}}, spans)
}

func TestFlagPrefixLowering(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("", flagPrefix(0))
	assert.Equal("(?i)", flagPrefix(match.CaseInsensitive))
	assert.Equal("(?ims)", flagPrefix(match.CaseInsensitive|match.MultiLine|match.DotAll))
}
