package spe3

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/robert-malhotra/go-spe3/internal/binary"
	"github.com/robert-malhotra/go-spe3/internal/pixel"
)

// PixelFormat identifies the sample encoding of the frame payload.
type PixelFormat = pixel.Format

// Pixel formats of the closed SPE3 enumeration.
const (
	Unsigned16 = pixel.Unsigned16
	Unsigned32 = pixel.Unsigned32
	Float32    = pixel.Float32
)

// Frame is one 2-D array of sensor samples captured at one exposure,
// stored in row-major order in the payload's native type.
type Frame struct {
	height  int
	width   int
	format  PixelFormat
	samples interface{} // []uint16, []uint32 or []float32
}

// Dims returns the frame shape as (height, width) in pixels.
func (f *Frame) Dims() (height, width int) {
	return f.height, f.width
}

// Format returns the frame's pixel encoding.
func (f *Frame) Format() PixelFormat {
	return f.format
}

// NumSamples returns the total number of samples (height * width).
func (f *Frame) NumSamples() int {
	return pixel.Len(f.samples)
}

// At returns the sample at the given row and column as a float64.
func (f *Frame) At(row, col int) float64 {
	if row < 0 || row >= f.height || col < 0 || col >= f.width {
		panic(fmt.Sprintf("spe3: frame index (%d,%d) out of range for %dx%d frame", row, col, f.height, f.width))
	}
	return pixel.Value(f.samples, row*f.width+col)
}

// Row returns one row of the frame as float64 values. For a spectrum
// (height 1) this is the whole frame.
func (f *Frame) Row(row int) []float64 {
	out := make([]float64, f.width)
	for col := range out {
		out[col] = f.At(row, col)
	}
	return out
}

// Read copies the frame's samples into dest, which must be a pointer to a
// slice. The payload's native type is always accepted; *[]float64 is
// accepted for every pixel format.
//
//	var counts []uint16
//	err := frame.Read(&counts)
func (f *Frame) Read(dest interface{}) error {
	return pixel.Convert(f.samples, dest)
}

// Float64s returns all samples in row-major order, widened to float64.
func (f *Frame) Float64s() []float64 {
	var out []float64
	// Conversion to float64 is defined for every pixel format.
	_ = pixel.Convert(f.samples, &out)
	return out
}

// Dense returns the frame as a gonum matrix for downstream numeric code.
// The matrix holds a copy; mutating it does not affect the frame.
func (f *Frame) Dense() *mat.Dense {
	return mat.NewDense(f.height, f.width, f.Float64s())
}

// FrameSet is the ordered sequence of decoded frames, in file order.
type FrameSet struct {
	frames []*Frame
}

// Len returns the number of frames.
func (s *FrameSet) Len() int {
	return len(s.frames)
}

// Frame returns the i-th frame.
func (s *FrameSet) Frame(i int) *Frame {
	return s.frames[i]
}

// Frames returns all frames in file order.
func (s *FrameSet) Frames() []*Frame {
	return s.frames
}

// validateLayout checks the footer-declared geometry before any frame bytes
// are read, so a malformed file fails with one reshape error instead of a
// partially built frame set.
func validateLayout(l *frameLayout) error {
	if l.count <= 0 {
		return fmt.Errorf("%w: frame count %d", ErrUnexpectedStructure, l.count)
	}
	if l.height <= 0 || l.width <= 0 {
		return fmt.Errorf("%w: region %dx%d", ErrUnexpectedStructure, l.height, l.width)
	}
	bps := int64(l.format.BytesPerSample())
	if l.size%bps != 0 {
		return fmt.Errorf("%w: frame size %d is not a multiple of %d-byte %s samples",
			ErrReshape, l.size, bps, l.format)
	}
	if samples := l.size / bps; samples != int64(l.height)*int64(l.width) {
		return fmt.Errorf("%w: frame holds %d samples, region is %dx%d",
			ErrReshape, samples, l.height, l.width)
	}
	return nil
}

// readFrame reads the i-th frame record from the payload. Frame i starts at
// dataOffset + i*stride; stride may exceed size when records are padded.
func readFrame(r *binary.Reader, l *frameLayout, i int) (*Frame, error) {
	pos := dataOffset + int64(i)*l.stride

	raw, err := r.ReadBytes(pos, int(l.size))
	if err != nil {
		return nil, fmt.Errorf("reading frame %d: %w", i, err)
	}
	samples, err := pixel.Decode(l.format, raw, r.ByteOrder())
	if err != nil {
		return nil, fmt.Errorf("decoding frame %d: %w", i, err)
	}

	return &Frame{
		height:  l.height,
		width:   l.width,
		format:  l.format,
		samples: samples,
	}, nil
}
