package adjust

import (
	"fmt"
	"image"
	"io"

	"github.com/gogpu/adjust/internal/imageio"
)

// Decode reads an image (PNG, JPEG, GIF, BMP, TIFF or WebP) and converts it
// to a pixmap. Any failure is reported as ErrDecodeFailure.
func Decode(r io.Reader) (*Pixmap, error) {
	img, _, err := imageio.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailure, err)
	}
	return fromDecoded(img)
}

// DecodeBytes is Decode for an image held in memory. Empty data is
// reported as ErrDecodeFailure.
func DecodeBytes(data []byte) (*Pixmap, error) {
	img, _, err := imageio.DecodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailure, err)
	}
	return fromDecoded(img)
}

// Load decodes the image file at path. Any failure, including a missing
// file, is reported as ErrDecodeFailure.
func Load(path string) (*Pixmap, error) {
	img, _, err := imageio.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailure, err)
	}
	return fromDecoded(img)
}

func fromDecoded(img image.Image) (*Pixmap, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: decoded image is %dx%d", ErrInvalidBuffer, b.Dx(), b.Dy())
	}
	return FromImage(img), nil
}

// Encode writes the pixmap to w. format is a name such as "png", "jpeg",
// "bmp" or "tiff"; quality only affects JPEG.
func (p *Pixmap) Encode(w io.Writer, format string, quality int) error {
	f := imageio.ParseFormat(format)
	if err := imageio.Encode(w, p.ToImage(), f, quality); err != nil {
		return fmt.Errorf("adjust: %w", err)
	}
	return nil
}

// Save writes the pixmap to path in the format implied by its extension.
func (p *Pixmap) Save(path string, quality int) error {
	if err := imageio.Save(path, p.ToImage(), quality); err != nil {
		return fmt.Errorf("adjust: %w", err)
	}
	return nil
}
