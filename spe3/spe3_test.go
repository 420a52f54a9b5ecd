package spe3

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// speBuilder assembles synthetic SPE3 files in memory. Defaults describe a
// two-frame unsigned-16 spectrum with a 1x4 region.
type speBuilder struct {
	version     float32
	frameType   string
	regionType  string
	count       int
	pixelFormat string
	size        int
	stride      int
	height      int
	width       int
	wavelengths string
	exposure    string

	payloadFrames int    // frames actually written; -1 means count
	footer        string // overrides the generated footer when non-empty
}

func newSPEBuilder() *speBuilder {
	return &speBuilder{
		version:       3.0,
		frameType:     "Frame",
		regionType:    "Region",
		count:         2,
		pixelFormat:   "MonochromeUnsigned16",
		size:          8,
		stride:        4108,
		height:        1,
		width:         4,
		wavelengths:   "400.0,400.5,401.0,401.5",
		exposure:      "0.5",
		payloadFrames: -1,
	}
}

// testSample is the deterministic value stored for frame i, sample j.
func testSample(frame, j int) uint16 {
	return uint16(1000*frame + j)
}

func (b *speBuilder) footerXML() string {
	return fmt.Sprintf(`<SpeFormat version="3.0" xmlns="http://www.princetoninstruments.com/spe/2009">
  <DataFormat>
    <DataBlock type=%q count="%d" pixelFormat=%q size="%d" stride="%d">
      <DataBlock type=%q height="%d" width="%d"/>
    </DataBlock>
  </DataFormat>
  <Calibrations>
    <WavelengthMapping>
      <Wavelength>%s</Wavelength>
    </WavelengthMapping>
  </Calibrations>
  <DataHistories>
    <DataHistory>
      <Origin>
        <Experiment>
          <Devices>
            <Cameras>
              <Camera>
                <ShutterTiming>
                  <ExposureTime>%s</ExposureTime>
                </ShutterTiming>
              </Camera>
            </Cameras>
          </Devices>
        </Experiment>
      </Origin>
    </DataHistory>
  </DataHistories>
</SpeFormat>`,
		b.frameType, b.count, b.pixelFormat, b.size, b.stride,
		b.regionType, b.height, b.width,
		b.wavelengths, b.exposure)
}

func (b *speBuilder) fillFrame(dst []byte, frame int) {
	switch b.pixelFormat {
	case "MonochromeUnsigned32":
		for j := 0; j < b.size/4; j++ {
			binary.LittleEndian.PutUint32(dst[j*4:], uint32(testSample(frame, j)))
		}
	case "MonochromeFloat32", "MonochromeFloating32":
		for j := 0; j < b.size/4; j++ {
			binary.LittleEndian.PutUint32(dst[j*4:], math.Float32bits(float32(testSample(frame, j))+0.25))
		}
	default:
		for j := 0; j < b.size/2; j++ {
			binary.LittleEndian.PutUint16(dst[j*2:], testSample(frame, j))
		}
	}
}

func (b *speBuilder) build() []byte {
	frames := b.payloadFrames
	if frames < 0 {
		frames = b.count
	}
	payloadLen := 0
	if frames > 0 {
		payloadLen = (frames-1)*b.stride + b.size
	}

	buf := make([]byte, dataOffset+payloadLen)
	binary.LittleEndian.PutUint32(buf[versionOffset:], math.Float32bits(b.version))
	for i := 0; i < frames; i++ {
		b.fillFrame(buf[dataOffset+i*b.stride:], i)
	}

	footer := b.footer
	if footer == "" {
		footer = b.footerXML()
	}
	binary.LittleEndian.PutUint64(buf[footerOffsetPos:], uint64(len(buf)))
	return append(buf, footer...)
}

func (b *speBuilder) decode(t *testing.T, opts ...Option) (*File, error) {
	t.Helper()
	return Decode(bytes.NewReader(b.build()), opts...)
}

func decodeBytes(t *testing.T, data []byte) (*File, error) {
	t.Helper()
	return Decode(bytes.NewReader(data))
}

// parseTestFooter parses the builder's footer as a standalone metadata
// document, for footer-navigation tests that need no binary container.
func (b *speBuilder) parseFooter(t *testing.T) *Metadata {
	t.Helper()
	md, err := ParseMetadata([]byte(b.footerXML()))
	require.NoError(t, err)
	return md
}

// assertSameStructure compares two metadata elements recursively: tag names,
// attribute order and values, text content, and child order.
func assertSameStructure(t *testing.T, want, got *Element) {
	t.Helper()
	require.Equal(t, want.Name(), got.Name())
	assert.Equal(t, want.Attrs(), got.Attrs(), "attributes of %s", want.Path())
	assert.Equal(t, strings.TrimSpace(want.Text()), strings.TrimSpace(got.Text()), "text of %s", want.Path())
	wc, gc := want.ChildElements(), got.ChildElements()
	require.Equal(t, len(wc), len(gc), "child count under %s", want.Path())
	for i := range wc {
		assertSameStructure(t, wc[i], gc[i])
	}
}
