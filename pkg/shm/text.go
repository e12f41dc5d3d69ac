package shm

import (
	"unicode/utf8"

	"github.com/valyala/bytebufferpool"
)

// ReadText returns the payload decoded as UTF-8. Invalid bytes are replaced
// with U+FFFD.
func (s *Segment) ReadText() string {
	return decodeLossy(s.Read())
}

func decodeLossy(p []byte) string {
	if utf8.Valid(p) {
		return string(p)
	}
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	for len(p) > 0 {
		r, size := utf8.DecodeRune(p)
		if r == utf8.RuneError && size == 1 {
			_, _ = buf.WriteString(string(utf8.RuneError))
		} else {
			_, _ = buf.Write(p[:size])
		}
		p = p[size:]
	}
	return buf.String()
}
