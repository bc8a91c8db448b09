package adjust

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gogpu/adjust/internal/parallel"
)

// Engine applies color matrices to pixmaps.
//
// An Engine holds no per-image state. It is safe for concurrent use as
// long as concurrent calls do not share destination buffers, which Apply
// never does since it allocates a new one per call.
type Engine struct {
	opts engineOptions
	pool *parallel.Pool
}

// NewEngine creates an engine. Without options it runs sequentially on the
// calling goroutine and needs no Close.
func NewEngine(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{opts: o}
	if o.workers != 1 {
		e.pool = parallel.NewPool(o.workers)
	}
	return e
}

// Close releases the engine's worker pool. Close is safe to call multiple
// times; a closed engine keeps working sequentially.
func (e *Engine) Close() {
	if e.pool != nil {
		e.pool.Close()
	}
}

// Workers returns the number of goroutines used for large images.
func (e *Engine) Workers() int {
	if e.pool == nil || !e.pool.IsRunning() {
		return 1
	}
	return e.pool.Workers()
}

// Matrix returns the combined matrix the engine uses for p.
func (e *Engine) Matrix(p Params) ColorMatrix {
	if e.opts.centeredContrast {
		return p.CenteredMatrix()
	}
	return p.Matrix()
}

// Apply returns a new pixmap with p applied to every pixel of src.
// src is never modified.
func (e *Engine) Apply(src *Pixmap, p Params) (*Pixmap, error) {
	return e.ApplyContext(context.Background(), src, p)
}

// ApplyContext is Apply with coarse cancellation: once ctx is done,
// bands that have not started are skipped and the call returns
// ctx.Err() with no pixmap.
func (e *Engine) ApplyContext(ctx context.Context, src *Pixmap, p Params) (*Pixmap, error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}
	if p.IsNeutral() {
		Logger().Debug("adjust: apply identity", "width", src.width, "height", src.height)
		return src.Clone(), nil
	}
	return e.run(ctx, src, e.Matrix(p))
}

// ApplyMatrix applies an arbitrary matrix to src. Only the R, G and B rows
// are used; alpha is always copied from src.
func (e *Engine) ApplyMatrix(src *Pixmap, m ColorMatrix) (*Pixmap, error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}
	return e.run(context.Background(), src, m)
}

func checkSource(src *Pixmap) error {
	if src == nil {
		return fmt.Errorf("%w: nil source pixmap", ErrDecodeFailure)
	}
	return src.validate()
}

func (e *Engine) run(ctx context.Context, src *Pixmap, m ColorMatrix) (*Pixmap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if m.IsIdentity() {
		return src.Clone(), nil
	}

	log := Logger()
	dst := NewPixmap(src.width, src.height)

	if e.useParallel(src) {
		log.Debug("adjust: apply",
			"width", src.width, "height", src.height,
			"workers", e.pool.Workers(), "matrix", m)

		e.pool.ForEachBand(src.height, e.opts.bandsPerWorker, func(start, end int) {
			if ctx.Err() != nil {
				return
			}
			transformRows(dst.data, src.data, src.width, start, end, &m)
		})
	} else {
		log.Debug("adjust: apply",
			"width", src.width, "height", src.height,
			"workers", 1, "matrix", m)

		transformRows(dst.data, src.data, src.width, 0, src.height, &m)
	}

	if err := ctx.Err(); err != nil {
		log.Warn("adjust: apply cancelled", slog.Any("err", err))
		return nil, err
	}
	return dst, nil
}

func (e *Engine) useParallel(src *Pixmap) bool {
	return e.pool != nil && e.pool.IsRunning() &&
		src.height > 1 && src.width*src.height >= e.opts.parallelThreshold
}

// transformRows applies m to rows [start, end) of src, writing dst.
// Alpha is copied verbatim.
func transformRows(dst, src []uint8, width, start, end int, m *ColorMatrix) {
	for i := start * width * 4; i < end*width*4; i += 4 {
		r := float64(src[i+0])
		g := float64(src[i+1])
		b := float64(src[i+2])
		a := float64(src[i+3])

		dst[i+0] = clampUint8(m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4])
		dst[i+1] = clampUint8(m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9])
		dst[i+2] = clampUint8(m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14])
		dst[i+3] = src[i+3]
	}
}

// clampUint8 rounds v to nearest and clamps it to [0, 255]. NaN maps to 0.
func clampUint8(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

var sequentialEngine = NewEngine()

// Apply returns a new pixmap with brightness, saturation, contrast and hue
// applied to src, in that composition order: saturation, then contrast
// and brightness, then hue. It runs on the calling goroutine.
//
// Apply fails with ErrDecodeFailure for a nil src and ErrInvalidBuffer for
// an empty or inconsistent one. No parameter value is rejected.
func Apply(src *Pixmap, brightness, saturation, contrast, hue float64) (*Pixmap, error) {
	return sequentialEngine.Apply(src, Params{
		Brightness: brightness,
		Saturation: saturation,
		Contrast:   contrast,
		Hue:        hue,
	})
}
