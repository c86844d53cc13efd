package edge

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

// Reader yields edges from a text edge list, one line at a time.
type Reader struct {
	sc       *bufio.Scanner
	line     int
	comments int
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Reader{sc: sc}
}

// Next returns the next edge. It returns io.EOF after the last line. Parse
// failures are returned as *LineError.
func (r *Reader) Next() (Edge, error) {
	for r.sc.Scan() {
		r.line++
		text := strings.TrimSuffix(r.sc.Text(), "\r")
		if IsComment(text) {
			r.comments++
			continue
		}
		e, err := ParseLine(text)
		if err != nil {
			return Edge{}, &LineError{Line: r.line, Err: err}
		}
		return e, nil
	}
	if err := r.sc.Err(); err != nil {
		return Edge{}, fmt.Errorf("read line %d: %w", r.line+1, err)
	}
	return Edge{}, io.EOF
}

// Line returns the number of lines consumed so far.
func (r *Reader) Line() int { return r.line }

// Comments returns the number of comment lines skipped so far.
func (r *Reader) Comments() int { return r.comments }

// ReadAll drains r and returns every edge in input order.
func ReadAll(r io.Reader) ([]Edge, error) {
	er := NewReader(r)
	var edges []Edge
	for {
		e, err := er.Next()
		if err == io.EOF {
			return edges, nil
		}
		if err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
}
