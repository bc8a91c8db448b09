package adjust

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Pixmap is a row-major buffer of straight (non-premultiplied) RGBA
// pixels, 4 bytes per pixel. Its dimensions never change.
type Pixmap struct {
	width  int
	height int
	data   []uint8
}

// NewPixmap creates a zeroed pixmap with the given dimensions.
// Non-positive dimensions produce an empty pixmap that Apply rejects.
func NewPixmap(width, height int) *Pixmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// PixmapFromRaw wraps existing RGBA data without copying.
// The caller keeps ownership of data; it must hold exactly width*height*4 bytes.
func PixmapFromRaw(data []uint8, width, height int) (*Pixmap, error) {
	if width <= 0 || height <= 0 || len(data) != width*height*4 {
		return nil, ErrInvalidBuffer
	}
	return &Pixmap{width: width, height: height, data: data}, nil
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// validate reports ErrInvalidBuffer for empty or inconsistent pixmaps.
func (p *Pixmap) validate() error {
	if p.width <= 0 || p.height <= 0 || len(p.data) != p.width*p.height*4 {
		return ErrInvalidBuffer
	}
	return nil
}

// NRGBAAt returns the pixel at (x, y). Out-of-range coordinates return
// transparent black.
func (p *Pixmap) NRGBAAt(x, y int) color.NRGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return color.NRGBA{}
	}
	i := (y*p.width + x) * 4
	return color.NRGBA{R: p.data[i], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// SetNRGBA sets the pixel at (x, y). Out-of-range coordinates are ignored.
func (p *Pixmap) SetNRGBA(x, y int, c color.NRGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = c.R
	p.data[i+1] = c.G
	p.data[i+2] = c.B
	p.data[i+3] = c.A
}

// Fill sets every pixel to c.
func (p *Pixmap) Fill(c color.NRGBA) {
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = c.R
		p.data[i+1] = c.G
		p.data[i+2] = c.B
		p.data[i+3] = c.A
	}
}

// Clone returns a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	data := make([]uint8, len(p.data))
	copy(data, p.data)
	return &Pixmap{width: p.width, height: p.height, data: data}
}

// ToImage copies the pixmap into an *image.NRGBA.
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// FromImage creates a pixmap from any image, converting its pixels to
// straight RGBA.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	pm := NewPixmap(bounds.Dx(), bounds.Dy())

	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Stride == pm.width*4 && nrgba.Rect.Min == (image.Point{}) {
		copy(pm.data, nrgba.Pix)
		return pm
	}

	dst := &image.NRGBA{Pix: pm.data, Stride: pm.width * 4, Rect: image.Rect(0, 0, pm.width, pm.height)}
	xdraw.Draw(dst, dst.Rect, img, bounds.Min, xdraw.Src)
	return pm
}

// Scaled returns a copy resampled so that its width is at most maxWidth,
// preserving aspect ratio. A pixmap that already fits is cloned.
func (p *Pixmap) Scaled(maxWidth int) *Pixmap {
	if maxWidth <= 0 || p.width <= maxWidth {
		return p.Clone()
	}
	h := p.height * maxWidth / p.width
	if h < 1 {
		h = 1
	}

	out := NewPixmap(maxWidth, h)
	dst := &image.NRGBA{Pix: out.data, Stride: maxWidth * 4, Rect: image.Rect(0, 0, maxWidth, h)}
	src := &image.NRGBA{Pix: p.data, Stride: p.width * 4, Rect: image.Rect(0, 0, p.width, p.height)}
	xdraw.CatmullRom.Scale(dst, dst.Rect, src, src.Rect, xdraw.Src, nil)
	return out
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.NRGBAAt(x, y)
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
