package spe3

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robert-malhotra/go-spe3/internal/pixel"
)

// The footer schema fixes where each decoded field lives. Paths are given
// relative to the SpeFormat root element.
const (
	rootTag         = "SpeFormat"
	blockTypeFrame  = "Frame"
	blockTypeRegion = "Region"
)

// frameLayout holds the payload geometry extracted from the footer's frame
// and region blocks.
type frameLayout struct {
	count  int
	format pixel.Format
	size   int64 // bytes per frame record
	stride int64 // bytes between successive frame records
	height int
	width  int
}

// resolve walks a fixed child path from el, failing with ErrMissingField
// naming the full path of the first absent element.
func resolve(el *Element, names ...string) (*Element, error) {
	path := el.Name()
	for _, name := range names {
		child := el.Child(name)
		if child == nil {
			return nil, fmt.Errorf("%w: %s/%s", ErrMissingField, path, name)
		}
		el = child
		path += "/" + name
	}
	return el, nil
}

// footerRoot checks that the document is an SpeFormat footer and returns its
// root element.
func footerRoot(md *Metadata) (*Element, error) {
	root := md.Root()
	if root.Name() != rootTag {
		return nil, fmt.Errorf("%w: root element is %q, want %q", ErrUnexpectedStructure, root.Name(), rootTag)
	}
	return root, nil
}

// extractWavelengths reads the spectrometer calibration vector, one
// wavelength per pixel column, from the comma-separated Wavelength text.
func extractWavelengths(md *Metadata) ([]float64, error) {
	root, err := footerRoot(md)
	if err != nil {
		return nil, err
	}
	el, err := resolve(root, "Calibrations", "WavelengthMapping", "Wavelength")
	if err != nil {
		return nil, err
	}
	fields := strings.Split(el.Text(), ",")
	out := make([]float64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: wavelength entry %d is not a number: %q", ErrUnexpectedStructure, i, field)
		}
		out[i] = v
	}
	return out, nil
}

// extractFrameLayout reads the frame block and its nested region block.
func extractFrameLayout(md *Metadata) (*frameLayout, error) {
	root, err := footerRoot(md)
	if err != nil {
		return nil, err
	}
	frame, err := resolve(root, "DataFormat", "DataBlock")
	if err != nil {
		return nil, err
	}
	if err := requireType(frame, blockTypeFrame); err != nil {
		return nil, err
	}

	count, err := intAttr(frame, "count")
	if err != nil {
		return nil, err
	}
	size, err := intAttr(frame, "size")
	if err != nil {
		return nil, err
	}
	stride, err := intAttr(frame, "stride")
	if err != nil {
		return nil, err
	}
	formatName, err := strAttr(frame, "pixelFormat")
	if err != nil {
		return nil, err
	}
	format, ok := pixel.Lookup(formatName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPixelFormat, formatName)
	}

	region := frame.Child("DataBlock")
	if region == nil {
		return nil, fmt.Errorf("%w: %s: no region block", ErrMissingField, frame.Path())
	}
	if err := requireType(region, blockTypeRegion); err != nil {
		return nil, err
	}
	height, err := intAttr(region, "height")
	if err != nil {
		return nil, err
	}
	width, err := intAttr(region, "width")
	if err != nil {
		return nil, err
	}

	return &frameLayout{
		count:  count,
		format: format,
		size:   int64(size),
		stride: int64(stride),
		height: height,
		width:  width,
	}, nil
}

// extractExposureTime reads the camera exposure time in seconds from the
// acquisition history.
func extractExposureTime(md *Metadata) (float64, error) {
	root, err := footerRoot(md)
	if err != nil {
		return 0, err
	}
	el, err := resolve(root, "DataHistories", "DataHistory", "Origin", "Experiment",
		"Devices", "Cameras", "Camera", "ShutterTiming", "ExposureTime")
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(el.Text()), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: exposure time is not a number: %q", ErrUnexpectedStructure, el.Path(), el.Text())
	}
	return v, nil
}

// requireType checks a data block's type attribute against the expected literal.
func requireType(el *Element, want string) error {
	got, ok := el.Attr("type")
	if !ok {
		return fmt.Errorf("%w: %s: no type attribute", ErrMissingField, el.Path())
	}
	if got != want {
		return fmt.Errorf("%w: %s has type %q, want %q", ErrUnexpectedStructure, el.Path(), got, want)
	}
	return nil
}

func strAttr(el *Element, name string) (string, error) {
	v, ok := el.Attr(name)
	if !ok {
		return "", fmt.Errorf("%w: %s: no %s attribute", ErrMissingField, el.Path(), name)
	}
	return v, nil
}

func intAttr(el *Element, name string) (int, error) {
	s, err := strAttr(el, name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %s attribute is not an integer: %q", ErrUnexpectedStructure, el.Path(), name, s)
	}
	return v, nil
}
