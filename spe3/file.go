package spe3

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/robert-malhotra/go-spe3/internal/binary"
)

// Fixed offsets of the SPE 2.x/3.0 container layout.
const (
	versionOffset   = 1992 // format version, float32
	footerOffsetPos = 678  // absolute offset of the XML footer, uint64
	dataOffset      = 4100 // start of the frame payload
)

// File represents a decoded SPE3 file. All fields are populated by a single
// decode pass and are read-only afterwards.
type File struct {
	path   string
	file   *os.File // owned file; nil when the caller supplied the source
	reader *binary.Reader

	version     float32
	meta        *Metadata
	wavelengths []float64
	layout      *frameLayout
	exposure    float64

	frames []*Frame // indexed by frame number; entries nil until read when lazy
	lazy   bool
	closed bool
}

// Open opens an SPE3 file and decodes it.
//
// Without options the whole file is decoded eagerly and the underlying file
// is closed before Open returns; Close is then a no-op. With WithLazyFrames
// the file is kept open for on-demand frame reads and the caller must Close.
func Open(path string, opts ...Option) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	spe, err := decode(f, path, opts)
	if err != nil {
		f.Close()
		return nil, err
	}

	if spe.lazy {
		spe.file = f
	} else {
		// Everything is in memory; the descriptor is no longer needed, and
		// a close failure on a read-only file loses nothing decoded.
		_ = f.Close()
	}
	return spe, nil
}

// Decode decodes an SPE3 file from a caller-supplied byte source. The caller
// keeps ownership of r and is responsible for closing it; with WithLazyFrames
// r must stay open for as long as frames are read.
func Decode(r io.ReaderAt, opts ...Option) (*File, error) {
	return decode(r, "", opts)
}

func decode(r io.ReaderAt, path string, opts []Option) (*File, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	f := &File{
		path:   path,
		reader: binary.NewReader(r),
		lazy:   o.lazyFrames,
	}

	// Decode in fixed order; each step depends on fields from the one before.
	steps := []func() error{
		f.readVersion,
		f.readFooter,
		f.readWavelengths,
		f.readFrameLayout,
		f.readExposureTime,
		f.readFrames,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Close releases the file descriptor when this package opened it. Lazy
// frames cannot be read after Close.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	if f.file != nil {
		return f.file.Close()
	}
	return nil
}

func (f *File) readVersion() error {
	v, err := f.reader.Float32(versionOffset)
	if err != nil {
		return fmt.Errorf("reading format version: %w", err)
	}
	f.version = v
	if v < MinVersion {
		return fmt.Errorf("%w: file declares %g, need >= %g", ErrUnsupportedVersion, v, float64(MinVersion))
	}
	return nil
}

func (f *File) readFooter() error {
	pos, err := f.reader.Uint64(footerOffsetPos)
	if err != nil {
		return fmt.Errorf("reading footer offset: %w", err)
	}
	if pos > math.MaxInt64 {
		return fmt.Errorf("%w: footer offset %d is not addressable", ErrMalformedMetadata, pos)
	}
	raw, err := f.reader.ReadToEnd(int64(pos))
	if err != nil {
		return fmt.Errorf("reading footer at offset %d: %w", pos, err)
	}
	if len(raw) == 0 {
		return fmt.Errorf("%w: footer offset %d is at or past end of file", ErrMalformedMetadata, pos)
	}
	md, err := ParseMetadata(raw)
	if err != nil {
		return err
	}
	f.meta = md
	return nil
}

func (f *File) readWavelengths() error {
	w, err := extractWavelengths(f.meta)
	if err != nil {
		return err
	}
	f.wavelengths = w
	return nil
}

func (f *File) readFrameLayout() error {
	layout, err := extractFrameLayout(f.meta)
	if err != nil {
		return err
	}
	if err := validateLayout(layout); err != nil {
		return err
	}
	f.layout = layout
	return nil
}

func (f *File) readExposureTime() error {
	t, err := extractExposureTime(f.meta)
	if err != nil {
		return err
	}
	f.exposure = t
	return nil
}

func (f *File) readFrames() error {
	f.frames = make([]*Frame, f.layout.count)
	if f.lazy {
		return nil
	}
	for i := range f.frames {
		frame, err := readFrame(f.reader, f.layout, i)
		if err != nil {
			return err
		}
		f.frames[i] = frame
	}
	return nil
}

// Version returns the file's declared SPE format version.
func (f *File) Version() float32 {
	return f.version
}

// Path returns the file path, or "" when decoded from a caller-supplied source.
func (f *File) Path() string {
	return f.path
}

// FrameCount returns the number of frames in the file.
func (f *File) FrameCount() int {
	return f.layout.count
}

// RegionSize returns the captured sensor region as (height, width) in pixels.
// Height is 1 for a simple spectrum.
func (f *File) RegionSize() (height, width int) {
	return f.layout.height, f.layout.width
}

// PixelFormat returns the payload's sample encoding.
func (f *File) PixelFormat() PixelFormat {
	return f.layout.format
}

// Wavelengths returns the calibration wavelength vector, one value per pixel
// column. Its length normally equals the region width; a mismatch indicates
// a calibration/geometry inconsistency in the file and is left to the caller
// to judge.
func (f *File) Wavelengths() []float64 {
	return f.wavelengths
}

// ExposureTime returns the per-frame camera exposure time in seconds.
func (f *File) ExposureTime() float64 {
	return f.exposure
}

// Metadata returns the raw parsed footer document.
func (f *File) Metadata() *Metadata {
	return f.meta
}

// Frame returns the i-th frame, reading it from the file first when frames
// are lazy.
func (f *File) Frame(i int) (*Frame, error) {
	if i < 0 || i >= len(f.frames) {
		return nil, fmt.Errorf("frame index %d out of range [0,%d)", i, len(f.frames))
	}
	if f.frames[i] == nil {
		if f.closed {
			return nil, ErrClosed
		}
		frame, err := readFrame(f.reader, f.layout, i)
		if err != nil {
			return nil, err
		}
		f.frames[i] = frame
	}
	return f.frames[i], nil
}

// Frames returns the full frame set in file order, reading any frames not
// yet loaded.
func (f *File) Frames() (*FrameSet, error) {
	for i := range f.frames {
		if f.frames[i] == nil {
			if _, err := f.Frame(i); err != nil {
				return nil, err
			}
		}
	}
	return &FrameSet{frames: f.frames}, nil
}

// ExportMetadata serializes the footer document and writes it to path as a
// UTF-8 XML text file.
func (f *File) ExportMetadata(path string) error {
	data, err := f.meta.Serialize()
	if err != nil {
		return fmt.Errorf("serializing metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}
	return nil
}
