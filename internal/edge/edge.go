// Package edge implements the text and binary forms of a graph edge list.
//
// The text form is one "src dst" pair of decimal integers per line, with
// lines starting with '#' treated as comments. The binary form is a flat
// sequence of fixed 8-byte records with no header or terminator.
package edge

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// RecordSize is the number of bytes one Edge occupies in the binary form.
const RecordSize = 8

var (
	// ErrFormat is returned for a line that is not exactly two integer tokens.
	ErrFormat = errors.New("malformed edge")
	// ErrRange is returned for an integer that does not fit in 32 bits.
	ErrRange = errors.New("edge endpoint out of int32 range")
	// ErrTruncated is returned when binary input ends inside a record.
	ErrTruncated = errors.New("truncated edge record")
)

// Edge is an ordered (src, dst) pair.
type Edge struct {
	Src int32 `json:"src"`
	Dst int32 `json:"dst"`
}

func (e Edge) String() string {
	return fmt.Sprintf("%d %d", e.Src, e.Dst)
}

// Encode writes e into b[:RecordSize] using order. It panics if b is short.
func (e Edge) Encode(order binary.ByteOrder, b []byte) {
	_ = b[RecordSize-1]
	order.PutUint32(b[0:4], uint32(e.Src))
	order.PutUint32(b[4:8], uint32(e.Dst))
}

// Decode reads an Edge from b[:RecordSize] using order.
func Decode(order binary.ByteOrder, b []byte) Edge {
	_ = b[RecordSize-1]
	return Edge{
		Src: int32(order.Uint32(b[0:4])),
		Dst: int32(order.Uint32(b[4:8])),
	}
}

// Undirected returns e with its endpoints ordered so that Src <= Dst.
func (e Edge) Undirected() Edge {
	if e.Src > e.Dst {
		return Edge{Src: e.Dst, Dst: e.Src}
	}
	return e
}

// IsComment reports whether line is a comment line.
func IsComment(line string) bool {
	return strings.HasPrefix(line, "#")
}

// ParseLine parses a non-comment line into an Edge.
func ParseLine(line string) (Edge, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Edge{}, fmt.Errorf("%w: want 2 fields, got %d", ErrFormat, len(fields))
	}
	src, err := parseEndpoint(fields[0])
	if err != nil {
		return Edge{}, err
	}
	dst, err := parseEndpoint(fields[1])
	if err != nil {
		return Edge{}, err
	}
	return Edge{Src: src, Dst: dst}, nil
}

func parseEndpoint(tok string) (int32, error) {
	n, err := strconv.ParseInt(tok, 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %s", ErrRange, tok)
		}
		return 0, fmt.Errorf("%w: %q is not an integer", ErrFormat, tok)
	}
	return int32(n), nil
}

// LineError records the 1-based input line an error occurred on.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ParseByteOrder maps a configured byte order name to a binary.ByteOrder.
// The empty string and "native" select the host byte order.
func ParseByteOrder(name string) (binary.ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "native":
		return binary.NativeEndian, nil
	case "little", "le":
		return binary.LittleEndian, nil
	case "big", "be":
		return binary.BigEndian, nil
	default:
		return nil, fmt.Errorf("unknown byte order %q (must be native, little or big)", name)
	}
}

// RecordCount returns the number of records in a binary file of size bytes.
func RecordCount(size int64) (int64, error) {
	if size%RecordSize != 0 {
		return 0, fmt.Errorf("%w: size %d is not a multiple of %d", ErrTruncated, size, RecordSize)
	}
	return size / RecordSize, nil
}
