// Package spe3 provides a pure Go implementation for reading SPE3 files
// produced by Princeton Instruments LightField software.
package spe3

import (
	"errors"

	"github.com/robert-malhotra/go-spe3/internal/binary"
)

// Common errors
var (
	ErrUnsupportedVersion     = errors.New("unsupported SPE version")
	ErrMalformedMetadata      = errors.New("malformed metadata document")
	ErrMissingField           = errors.New("metadata field not found")
	ErrUnexpectedStructure    = errors.New("unexpected metadata structure")
	ErrUnsupportedPixelFormat = errors.New("unsupported pixel format")
	ErrReshape                = errors.New("frame size incompatible with region dimensions")
	ErrClosed                 = errors.New("file is closed")
)

// ErrTruncatedRead is returned when the file holds fewer bytes than a read
// demands, for both header fields and frame payloads.
var ErrTruncatedRead = binary.ErrTruncated

// MinVersion is the lowest SPE format version this package reads. Files
// below 3.0 store their metadata in a binary header instead of the XML
// footer and are rejected outright.
const MinVersion = 3.0
