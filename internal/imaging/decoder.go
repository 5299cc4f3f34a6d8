package imaging

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	_ "image/jpeg"
	_ "image/png"
)

// Metadata describes a successfully decoded image.
type Metadata struct {
	Height   int
	Width    int
	Channels int
	Format   string
}

// Colorspace maps the channel count to the label stored in each record:
// "RGB" for 3, "RGBA" for 4, "MONO" for 1, "unknown" otherwise.
func (m Metadata) Colorspace() string {
	switch m.Channels {
	case 4:
		return "RGBA"
	case 3:
		return "RGB"
	case 1:
		return "MONO"
	default:
		return "unknown"
	}
}

// Decoder validates raw image bytes and reports their dimensions.
type Decoder interface {
	Decode(data []byte) (Metadata, error)
}

// StdDecoder decodes through the standard library image registry. PNG and
// JPEG are registered; a malformed or unsupported payload is an error, which
// aborts the whole build at the call site.
type StdDecoder struct{}

// NewStdDecoder returns the default decoder.
func NewStdDecoder() StdDecoder {
	return StdDecoder{}
}

// Decode fully decodes data to validate it, then derives pixel dimensions,
// channel count, and the format label from the decoded representation.
func (StdDecoder) Decode(data []byte) (Metadata, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Metadata{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	return Metadata{
		Height:   bounds.Dy(),
		Width:    bounds.Dx(),
		Channels: channelCount(img),
		Format:   strings.ToUpper(format),
	}, nil
}

// channelCount derives the per-pixel channel count from the decoded
// representation. Go's png decoder expands truecolor images into (N)RGBA
// buffers, so color images are classified by whether an alpha channel is
// actually in use rather than by buffer type alone.
func channelCount(img image.Image) int {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.YCbCr:
		return 3
	case *image.NYCbCrA:
		return 4
	}
	if opaque, ok := img.(interface{ Opaque() bool }); ok && opaque.Opaque() {
		return 3
	}
	return 4
}
