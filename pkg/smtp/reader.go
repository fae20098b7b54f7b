package smtp

import (
	"io"
	"strings"
)

const readChunkSize = 4096

// LineReader turns a byte stream into CRLF-terminated protocol lines.
//
// A LineReader has a single consumer: NextLine must not be called from
// more than one goroutine at a time.
type LineReader struct {
	src   io.Reader
	buf   string
	lines []string
	err   error
	chunk []byte
}

// NewLineReader returns a LineReader reading from src.
func NewLineReader(src io.Reader) *LineReader {
	return &LineReader{
		src:   src,
		chunk: make([]byte, readChunkSize),
	}
}

// NextLine returns the next complete line without its terminator. It
// blocks on the underlying reader until a line is available. Once the
// queue is drained, a read error is returned on every subsequent call.
func (r *LineReader) NextLine() (string, error) {
	for len(r.lines) == 0 {
		if r.err != nil {
			return "", r.err
		}
		n, err := r.src.Read(r.chunk)
		if n > 0 {
			r.feed(r.chunk[:n])
		}
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			r.err = err
		}
	}

	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

// Buffered reports the number of complete lines waiting to be consumed.
func (r *LineReader) Buffered() int {
	return len(r.lines)
}

func (r *LineReader) feed(chunk []byte) {
	r.buf += string(chunk)
	parts := strings.Split(r.buf, "\r\n")
	r.buf = parts[len(parts)-1]
	for _, line := range parts[:len(parts)-1] {
		if line == "" {
			continue
		}
		r.lines = append(r.lines, line)
	}
}
