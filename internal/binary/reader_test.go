package binary

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func testReader(data []byte) *Reader {
	return NewReader(bytes.NewReader(data))
}

func TestReadScalars(t *testing.T) {
	buf := make([]byte, 32)
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(3.25))
	binary.LittleEndian.PutUint64(buf[4:], 0x1122334455667788)
	binary.LittleEndian.PutUint16(buf[12:], 0xBEEF)
	binary.LittleEndian.PutUint32(buf[14:], uint32(0xFFFFFFFF)) // -1 as int32

	r := testReader(buf)

	f, err := r.Float32(0)
	if err != nil {
		t.Fatalf("Float32 failed: %v", err)
	}
	if f != 3.25 {
		t.Errorf("expected 3.25, got %v", f)
	}

	u64, err := r.Uint64(4)
	if err != nil {
		t.Fatalf("Uint64 failed: %v", err)
	}
	if u64 != 0x1122334455667788 {
		t.Errorf("expected 0x1122334455667788, got %#x", u64)
	}

	u16, err := r.Uint16(12)
	if err != nil {
		t.Fatalf("Uint16 failed: %v", err)
	}
	if u16 != 0xBEEF {
		t.Errorf("expected 0xBEEF, got %#x", u16)
	}

	i32, err := r.Int32(14)
	if err != nil {
		t.Fatalf("Int32 failed: %v", err)
	}
	if i32 != -1 {
		t.Errorf("expected -1, got %d", i32)
	}
}

func TestReadBytes(t *testing.T) {
	r := testReader([]byte("0123456789"))

	buf, err := r.ReadBytes(4, 3)
	if err != nil {
		t.Fatalf("ReadBytes failed: %v", err)
	}
	if string(buf) != "456" {
		t.Errorf("expected \"456\", got %q", buf)
	}
}

func TestTruncated(t *testing.T) {
	r := testReader(make([]byte, 10))

	if _, err := r.Uint64(8); !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
	if _, err := r.Float32(100); !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated past end, got %v", err)
	}
	if _, err := r.ReadBytes(0, 12); !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated for short read, got %v", err)
	}

	// Exact fit is not truncated.
	if _, err := r.ReadBytes(0, 10); err != nil {
		t.Errorf("exact read failed: %v", err)
	}
}

func TestReadToEnd(t *testing.T) {
	data := []byte("0123456789")
	r := testReader(data)

	tail, err := r.ReadToEnd(6)
	if err != nil {
		t.Fatalf("ReadToEnd failed: %v", err)
	}
	if string(tail) != "6789" {
		t.Errorf("expected \"6789\", got %q", tail)
	}

	empty, err := r.ReadToEnd(10)
	if err != nil {
		t.Fatalf("ReadToEnd at end failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty tail, got %q", empty)
	}
}

func TestReadBytesZero(t *testing.T) {
	r := testReader([]byte{1, 2, 3})
	buf, err := r.ReadBytes(0, 0)
	if err != nil {
		t.Fatalf("zero-length read failed: %v", err)
	}
	if buf != nil {
		t.Errorf("expected nil, got %v", buf)
	}
}
