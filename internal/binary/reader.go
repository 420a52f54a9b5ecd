// Package binary provides low-level binary I/O operations for SPE3 file parsing.
package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrTruncated is returned when a read demands more bytes than the source holds.
var ErrTruncated = errors.New("truncated read")

// Reader provides typed reads at absolute byte positions. SPE3 files are
// little-endian throughout, so the byte order is fixed at construction.
type Reader struct {
	r     io.ReaderAt
	order binary.ByteOrder
}

// NewReader creates a reader over the given byte source.
func NewReader(r io.ReaderAt) *Reader {
	return &Reader{
		r:     r,
		order: binary.LittleEndian,
	}
}

// ByteOrder returns the configured byte order.
func (r *Reader) ByteOrder() binary.ByteOrder {
	return r.order
}

// ReadBytes reads exactly n bytes starting at the absolute position pos.
func (r *Reader) ReadBytes(pos int64, n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	read, err := r.r.ReadAt(buf, pos)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: %d bytes at offset %d, got %d", ErrTruncated, n, pos, read)
		}
		return nil, err
	}
	return buf, nil
}

// ReadToEnd reads from the absolute position pos to the end of the source.
func (r *Reader) ReadToEnd(pos int64) ([]byte, error) {
	sec := io.NewSectionReader(r.r, pos, math.MaxInt64-pos)
	buf, err := io.ReadAll(sec)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Uint16 reads an unsigned 16-bit integer at pos.
func (r *Reader) Uint16(pos int64) (uint16, error) {
	buf, err := r.ReadBytes(pos, 2)
	if err != nil {
		return 0, err
	}
	return r.order.Uint16(buf), nil
}

// Uint32 reads an unsigned 32-bit integer at pos.
func (r *Reader) Uint32(pos int64) (uint32, error) {
	buf, err := r.ReadBytes(pos, 4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(buf), nil
}

// Int32 reads a signed 32-bit integer at pos.
func (r *Reader) Int32(pos int64) (int32, error) {
	v, err := r.Uint32(pos)
	return int32(v), err
}

// Uint64 reads an unsigned 64-bit integer at pos.
func (r *Reader) Uint64(pos int64) (uint64, error) {
	buf, err := r.ReadBytes(pos, 8)
	if err != nil {
		return 0, err
	}
	return r.order.Uint64(buf), nil
}

// Float32 reads a 32-bit IEEE 754 float at pos.
func (r *Reader) Float32(pos int64) (float32, error) {
	v, err := r.Uint32(pos)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

