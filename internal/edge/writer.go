package edge

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// Writer encodes edges as fixed-size binary records.
type Writer struct {
	w     *bufio.Writer
	order binary.ByteOrder
	buf   [RecordSize]byte
	count int
}

// NewWriter returns a Writer that encodes with order. A nil order selects
// the host byte order.
func NewWriter(w io.Writer, order binary.ByteOrder) *Writer {
	if order == nil {
		order = binary.NativeEndian
	}
	return &Writer{w: bufio.NewWriter(w), order: order}
}

// Write appends one record. Output is buffered until Flush.
func (w *Writer) Write(e Edge) error {
	e.Encode(w.order, w.buf[:])
	if _, err := w.w.Write(w.buf[:]); err != nil {
		return fmt.Errorf("write record %d: %w", w.count, err)
	}
	w.count++
	return nil
}

// Flush writes any buffered records to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// Count returns the number of records written.
func (w *Writer) Count() int { return w.count }

// RecordReader decodes fixed-size binary records.
type RecordReader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [RecordSize]byte
	n     int
}

// NewRecordReader returns a RecordReader that decodes with order. A nil
// order selects the host byte order.
func NewRecordReader(r io.Reader, order binary.ByteOrder) *RecordReader {
	if order == nil {
		order = binary.NativeEndian
	}
	return &RecordReader{r: bufio.NewReader(r), order: order}
}

// Next returns the next record, io.EOF at a record boundary, or
// ErrTruncated if the input ends mid-record.
func (r *RecordReader) Next() (Edge, error) {
	_, err := io.ReadFull(r.r, r.buf[:])
	switch err {
	case nil:
		r.n++
		return Decode(r.order, r.buf[:]), nil
	case io.EOF:
		return Edge{}, io.EOF
	case io.ErrUnexpectedEOF:
		return Edge{}, fmt.Errorf("record %d: %w", r.n, ErrTruncated)
	default:
		return Edge{}, fmt.Errorf("read record %d: %w", r.n, err)
	}
}
