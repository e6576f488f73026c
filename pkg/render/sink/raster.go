package sink

import (
	"bytes"
	"image"

	"github.com/gogpu/gg"

	"github.com/matzehuels/viewgrid/pkg/errors"
)

// DefaultJPEGQuality is used unless WithQuality overrides it.
const DefaultJPEGQuality = 90

// RenderPNG encodes img as PNG.
func RenderPNG(img image.Image) ([]byte, error) {
	dc := gg.NewContextForImage(img)
	defer dc.Close()
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// RenderJPEG encodes img as JPEG at quality (1-100). Out-of-range values use
// DefaultJPEGQuality.
func RenderJPEG(img image.Image, quality int) ([]byte, error) {
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	dc := gg.NewContextForImage(img)
	defer dc.Close()
	var buf bytes.Buffer
	if err := dc.EncodeJPEG(&buf, quality); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode jpeg")
	}
	return buf.Bytes(), nil
}
