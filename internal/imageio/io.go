// Package imageio decodes and encodes image containers for the
// adjustment engine. The engine itself only sees decoded pixels.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when a format cannot be encoded.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("imageio: empty data")
)

// Format identifies an image container.
type Format uint8

// Supported formats. GIF and WebP can only be decoded.
const (
	FormatUnknown Format = iota
	FormatPNG
	FormatJPEG
	FormatGIF
	FormatBMP
	FormatTIFF
	FormatWebP
)

// DefaultJPEGQuality is used when Encode gets a quality outside 1-100.
const DefaultJPEGQuality = 90

var formatNames = [...]string{
	FormatUnknown: "unknown",
	FormatPNG:     "png",
	FormatJPEG:    "jpeg",
	FormatGIF:     "gif",
	FormatBMP:     "bmp",
	FormatTIFF:    "tiff",
	FormatWebP:    "webp",
}

// String returns the lower-case format name.
func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return formatNames[FormatUnknown]
}

// CanEncode reports whether Encode supports f.
func (f Format) CanEncode() bool {
	switch f {
	case FormatPNG, FormatJPEG, FormatBMP, FormatTIFF:
		return true
	default:
		return false
	}
}

// ParseFormat maps a name as returned by image.Decode ("png", "jpeg", ...)
// or a file extension without the dot to a Format.
func ParseFormat(name string) Format {
	switch strings.ToLower(name) {
	case "png":
		return FormatPNG
	case "jpg", "jpeg":
		return FormatJPEG
	case "gif":
		return FormatGIF
	case "bmp":
		return FormatBMP
	case "tif", "tiff":
		return FormatTIFF
	case "webp":
		return FormatWebP
	default:
		return FormatUnknown
	}
}

// FormatFromPath returns the format implied by the file extension of path.
func FormatFromPath(path string) Format {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Decode decodes an image from r, detecting the format from its content.
func Decode(r io.Reader) (image.Image, Format, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		return nil, FormatUnknown, fmt.Errorf("imageio: decode: %w", err)
	}
	return img, ParseFormat(name), nil
}

// DecodeBytes decodes an image held in memory.
func DecodeBytes(data []byte) (image.Image, Format, error) {
	if len(data) == 0 {
		return nil, FormatUnknown, ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// Load decodes the image file at path. An empty file fails with
// ErrEmptyData.
func Load(path string) (image.Image, Format, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, FormatUnknown, fmt.Errorf("imageio: read file: %w", err)
	}
	return DecodeBytes(data)
}

// Encode writes img to w in the given format. quality only affects JPEG;
// values outside 1-100 select DefaultJPEGQuality.
func Encode(w io.Writer, img image.Image, format Format, quality int) error {
	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatJPEG:
		if quality < 1 || quality > 100 {
			quality = DefaultJPEGQuality
		}
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("imageio: encode %s: %w", format, err)
	}
	return nil
}

// Save encodes img into a new file at path, choosing the format from the
// file extension.
func Save(path string, img image.Image, quality int) error {
	format := FormatFromPath(path)
	if !format.CanEncode() {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("imageio: create file: %w", err)
	}

	if err := Encode(f, img, format, quality); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
