package testutils

import (
	"io"
)

// MockReader is an io.Reader that yields copies of Content back to back until
// Length bytes have been produced. Tests use it to build large repetitive
// inputs without keeping fixture files around.
type MockReader struct {
	Pos     int
	Length  int
	Content []byte
	next    []byte
}

// Read fills p with repetitions of Content until Length is reached.
func (m *MockReader) Read(p []byte) (n int, err error) {
	if m.Content == nil {
		m.Content = []byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	}

	if m.Pos >= m.Length {
		err = io.EOF
		return
	}

	for {
		if m.Pos+len(m.Content) > m.Length {
			err = io.EOF
			return
		}

		if len(m.next) == 0 {
			m.next = m.Content
		}

		c := copy(p[n:], m.next)
		n += c
		m.Pos += c
		m.next = m.next[c:]

		if n == len(p) {
			break
		}
	}

	return
}
