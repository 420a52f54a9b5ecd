// Package pixel maps SPE3 pixel-format names to sample types and converts
// raw payload bytes to Go values.
//
// The format names form a closed set defined by the LightField acquisition
// software. Anything outside the table is rejected rather than guessed at.
package pixel

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Format identifies the sample encoding of a frame payload.
type Format int

const (
	// Unsigned16 is two bytes per sample, unsigned.
	Unsigned16 Format = iota
	// Unsigned32 is four bytes per sample, unsigned.
	Unsigned32
	// Float32 is four bytes per sample, IEEE 754.
	Float32
)

// formats is the closed name table. MonochromeFloating32 is a spelling some
// LightField versions emit for the same encoding as MonochromeFloat32.
var formats = map[string]Format{
	"MonochromeUnsigned16": Unsigned16,
	"MonochromeUnsigned32": Unsigned32,
	"MonochromeFloat32":    Float32,
	"MonochromeFloating32": Float32,
}

// Lookup resolves a pixelFormat attribute value to a Format.
func Lookup(name string) (Format, bool) {
	f, ok := formats[name]
	return f, ok
}

// String returns the canonical format name.
func (f Format) String() string {
	switch f {
	case Unsigned16:
		return "MonochromeUnsigned16"
	case Unsigned32:
		return "MonochromeUnsigned32"
	case Float32:
		return "MonochromeFloat32"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// BytesPerSample returns the width of one sample in bytes.
func (f Format) BytesPerSample() int {
	switch f {
	case Unsigned16:
		return 2
	default:
		return 4
	}
}

// Decode converts raw payload bytes into the format's native Go slice:
// []uint16, []uint32 or []float32.
func Decode(f Format, raw []byte, order binary.ByteOrder) (interface{}, error) {
	width := f.BytesPerSample()
	if len(raw)%width != 0 {
		return nil, fmt.Errorf("%d payload bytes not a multiple of %d-byte samples", len(raw), width)
	}
	n := len(raw) / width
	switch f {
	case Unsigned16:
		out := make([]uint16, n)
		for i := range out {
			out[i] = order.Uint16(raw[i*2:])
		}
		return out, nil
	case Unsigned32:
		out := make([]uint32, n)
		for i := range out {
			out[i] = order.Uint32(raw[i*4:])
		}
		return out, nil
	case Float32:
		out := make([]float32, n)
		for i := range out {
			out[i] = math.Float32frombits(order.Uint32(raw[i*4:]))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown format %d", int(f))
	}
}

// Convert copies decoded samples into dest, which must be a pointer to a
// slice. The native slice type is always accepted; *[]float64 is accepted
// for every format as a widening conversion.
func Convert(samples interface{}, dest interface{}) error {
	switch src := samples.(type) {
	case []uint16:
		switch d := dest.(type) {
		case *[]uint16:
			*d = append((*d)[:0], src...)
			return nil
		case *[]float64:
			*d = widenUint16(src)
			return nil
		}
	case []uint32:
		switch d := dest.(type) {
		case *[]uint32:
			*d = append((*d)[:0], src...)
			return nil
		case *[]float64:
			*d = widenUint32(src)
			return nil
		}
	case []float32:
		switch d := dest.(type) {
		case *[]float32:
			*d = append((*d)[:0], src...)
			return nil
		case *[]float64:
			*d = widenFloat32(src)
			return nil
		}
	}
	return fmt.Errorf("cannot convert %T samples into %T", samples, dest)
}

// Value returns the sample at index i as a float64.
func Value(samples interface{}, i int) float64 {
	switch src := samples.(type) {
	case []uint16:
		return float64(src[i])
	case []uint32:
		return float64(src[i])
	case []float32:
		return float64(src[i])
	default:
		return 0
	}
}

// Len returns the number of decoded samples.
func Len(samples interface{}) int {
	switch src := samples.(type) {
	case []uint16:
		return len(src)
	case []uint32:
		return len(src)
	case []float32:
		return len(src)
	default:
		return 0
	}
}

func widenUint16(src []uint16) []float64 {
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = float64(v)
	}
	return out
}

func widenUint32(src []uint32) []float64 {
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = float64(v)
	}
	return out
}

func widenFloat32(src []float32) []float64 {
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = float64(v)
	}
	return out
}
