package adjust

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"math"
	"runtime"
	"testing"
	"time"
)

// pixmapOf builds a 1-row pixmap from the given pixels.
func pixmapOf(pixels ...color.NRGBA) *Pixmap {
	p := NewPixmap(len(pixels), 1)
	for x, c := range pixels {
		p.SetNRGBA(x, 0, c)
	}
	return p
}

// gradientPixmap fills a pixmap with a deterministic, colorful pattern
// including partially transparent pixels.
func gradientPixmap(w, h int) *Pixmap {
	p := NewPixmap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / max(w-1, 1)),
				G: uint8(y * 255 / max(h-1, 1)),
				B: uint8((x*7 + y*13) % 256),
				A: uint8(255 - (x+y)%64),
			})
		}
	}
	return p
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func TestApply_Identity(t *testing.T) {
	src := gradientPixmap(17, 9)

	got, err := Apply(src, 0, 1, 1, 0)
	if err != nil {
		t.Fatalf("Apply() = %v", err)
	}
	if got == src {
		t.Fatal("Apply() must return a new pixmap")
	}
	for i, v := range src.Data() {
		if got.Data()[i] != v {
			t.Fatalf("byte %d = %d, want %d", i, got.Data()[i], v)
		}
	}
}

func TestApply_IdentityMatrixThroughPixelLoop(t *testing.T) {
	// A hue of 360 is not short-circuited but is the identity within
	// rounding, so it exercises the per-pixel path.
	src := gradientPixmap(16, 16)
	got, err := Apply(src, 0, 1, 1, 360)
	if err != nil {
		t.Fatalf("Apply() = %v", err)
	}
	for i, v := range src.Data() {
		if absDiff(got.Data()[i], v) > 1 {
			t.Fatalf("byte %d = %d, want %d (+-1)", i, got.Data()[i], v)
		}
	}
}

func TestApply_Grayscale(t *testing.T) {
	src := gradientPixmap(32, 8)

	got, err := Apply(src, 0, 0, 1, 0)
	if err != nil {
		t.Fatalf("Apply() = %v", err)
	}

	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			in := src.NRGBAAt(x, y)
			out := got.NRGBAAt(x, y)
			lum := uint8(math.Round(0.213*float64(in.R) + 0.715*float64(in.G) + 0.072*float64(in.B)))

			if absDiff(out.R, out.G) > 1 || absDiff(out.G, out.B) > 1 {
				t.Fatalf("pixel (%d,%d) = %v, want R == G == B", x, y, out)
			}
			if absDiff(out.R, lum) > 1 {
				t.Fatalf("pixel (%d,%d) gray = %d, want %d", x, y, out.R, lum)
			}
		}
	}
}

func TestApply_BrightnessClamps(t *testing.T) {
	src := pixmapOf(color.NRGBA{R: 200, G: 10, B: 0, A: 255})

	got, err := Apply(src, 255, 1, 1, 0)
	if err != nil {
		t.Fatalf("Apply() = %v", err)
	}
	if c := got.NRGBAAt(0, 0); c != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("brightness +255 = %v, want all channels clamped to 255", c)
	}

	got, err = Apply(src, -255, 1, 1, 0)
	if err != nil {
		t.Fatalf("Apply() = %v", err)
	}
	if c := got.NRGBAAt(0, 0); c != (color.NRGBA{R: 0, G: 0, B: 0, A: 255}) {
		t.Errorf("brightness -255 = %v, want all channels clamped to 0", c)
	}
}

func TestApply_AlphaPreserved(t *testing.T) {
	src := gradientPixmap(20, 20)
	params := []Params{
		{Brightness: 255, Saturation: 1, Contrast: 1},
		{Brightness: -100, Saturation: 0, Contrast: 2, Hue: 90},
		{Brightness: 12, Saturation: 3, Contrast: 0.5, Hue: -180},
		{Brightness: 0, Saturation: -1, Contrast: 10, Hue: 33},
	}

	for _, p := range params {
		got, err := NewEngine().Apply(src, p)
		if err != nil {
			t.Fatalf("Apply(%+v) = %v", p, err)
		}
		for i := 3; i < len(src.Data()); i += 4 {
			if got.Data()[i] != src.Data()[i] {
				t.Fatalf("Apply(%+v): alpha at byte %d = %d, want %d", p, i, got.Data()[i], src.Data()[i])
			}
		}
	}
}

func TestApply_EndToEnd(t *testing.T) {
	src := pixmapOf(
		color.NRGBA{R: 100, G: 150, B: 200, A: 255},
		color.NRGBA{R: 0, G: 0, B: 0, A: 255},
	)

	got, err := Apply(src, 10, 0.5, 1.2, 0)
	if err != nil {
		t.Fatalf("Apply() = %v", err)
	}

	// Saturation 0.5 first, then x*1.2 + 10.
	want := []color.NRGBA{
		{R: 156, G: 186, B: 216, A: 255}, // (121.475, 146.475, 171.475) * 1.2 + 10
		{R: 10, G: 10, B: 10, A: 255},
	}
	for x, w := range want {
		c := got.NRGBAAt(x, 0)
		if absDiff(c.R, w.R) > 1 || absDiff(c.G, w.G) > 1 || absDiff(c.B, w.B) > 1 || c.A != w.A {
			t.Errorf("pixel %d = %v, want %v", x, c, w)
		}
	}
}

func TestApply_StepOrderMatters(t *testing.T) {
	// Applied as separate clamped passes, saturation->contrast and
	// contrast->saturation give different pixels.
	src := pixmapOf(color.NRGBA{R: 200, G: 50, B: 30, A: 255})
	e := NewEngine()
	sat := SaturationMatrix(0.3)
	contrast := ContrastBrightnessMatrix(1.5, 0)

	pass := func(first, second ColorMatrix) color.NRGBA {
		t.Helper()
		mid, err := e.ApplyMatrix(src, first)
		if err != nil {
			t.Fatalf("ApplyMatrix() = %v", err)
		}
		out, err := e.ApplyMatrix(mid, second)
		if err != nil {
			t.Fatalf("ApplyMatrix() = %v", err)
		}
		return out.NRGBAAt(0, 0)
	}

	satFirst := pass(sat, contrast)
	contrastFirst := pass(contrast, sat)

	if want := (color.NRGBA{R: 174, G: 107, B: 98, A: 255}); satFirst != want {
		t.Errorf("saturation then contrast = %v, want %v", satFirst, want)
	}
	if want := (color.NRGBA{R: 154, G: 100, B: 91, A: 255}); contrastFirst != want {
		t.Errorf("contrast then saturation = %v, want %v", contrastFirst, want)
	}
}

func TestApply_HueOrderMatters(t *testing.T) {
	src := pixmapOf(color.NRGBA{R: 200, G: 50, B: 30, A: 255})
	e := NewEngine()

	a, err := e.ApplyMatrix(src, Compose(SaturationMatrix(0.3), HueRotationMatrix(90)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.ApplyMatrix(src, Compose(HueRotationMatrix(90), SaturationMatrix(0.3)))
	if err != nil {
		t.Fatal(err)
	}
	if a.NRGBAAt(0, 0) == b.NRGBAAt(0, 0) {
		t.Errorf("both orders produced %v", a.NRGBAAt(0, 0))
	}
}

func TestApply_SourceUnchanged(t *testing.T) {
	src := gradientPixmap(8, 8)
	orig := src.Clone()

	if _, err := Apply(src, 40, 1.8, 1.3, 120); err != nil {
		t.Fatalf("Apply() = %v", err)
	}
	for i, v := range orig.Data() {
		if src.Data()[i] != v {
			t.Fatalf("source byte %d changed from %d to %d", i, v, src.Data()[i])
		}
	}
}

func TestApply_ExtremeParamsAccepted(t *testing.T) {
	src := gradientPixmap(4, 4)
	for _, p := range []Params{
		{Brightness: 1000, Saturation: 50, Contrast: 50, Hue: 1e6},
		{Brightness: -1e9, Saturation: -20, Contrast: -3, Hue: -1e6},
		{Brightness: 0, Saturation: 1, Contrast: 0, Hue: 0},
	} {
		if _, err := NewEngine().Apply(src, p); err != nil {
			t.Errorf("Apply(%+v) = %v, want success", p, err)
		}
	}
}

func TestApply_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     *Pixmap
		wantErr error
	}{
		{"nil source", nil, ErrDecodeFailure},
		{"zero width", NewPixmap(0, 5), ErrInvalidBuffer},
		{"zero height", NewPixmap(5, 0), ErrInvalidBuffer},
		{"negative size", NewPixmap(-3, -3), ErrInvalidBuffer},
		{"short data", &Pixmap{width: 2, height: 2, data: make([]uint8, 7)}, ErrInvalidBuffer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.src, 10, 0.5, 1.2, 30)
			if got != nil {
				t.Error("Apply() returned a pixmap on failure")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Apply() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrDecodeFailure) {
				t.Errorf("Apply() error = %v, want it to match ErrDecodeFailure", err)
			}
		})
	}
}

func TestEngine_ParallelMatchesSequential(t *testing.T) {
	src := gradientPixmap(123, 77)
	p := Params{Brightness: -15, Saturation: 1.6, Contrast: 1.1, Hue: -40}

	want, err := NewEngine().Apply(src, p)
	if err != nil {
		t.Fatalf("sequential Apply() = %v", err)
	}

	e := NewEngine(WithWorkers(4), WithParallelThreshold(0), WithBandsPerWorker(3))
	defer e.Close()

	if e.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", e.Workers())
	}

	got, err := e.Apply(src, p)
	if err != nil {
		t.Fatalf("parallel Apply() = %v", err)
	}
	for i, v := range want.Data() {
		if got.Data()[i] != v {
			t.Fatalf("byte %d: parallel = %d, sequential = %d", i, got.Data()[i], v)
		}
	}
}

func TestEngine_ClosedFallsBackToSequential(t *testing.T) {
	e := NewEngine(WithWorkers(2), WithParallelThreshold(0))
	e.Close()
	e.Close()

	if e.Workers() != 1 {
		t.Errorf("Workers() after Close = %d, want 1", e.Workers())
	}
	if _, err := e.Apply(gradientPixmap(10, 10), Params{Saturation: 0, Contrast: 1}); err != nil {
		t.Errorf("Apply() on closed engine = %v", err)
	}
}

func TestEngine_CloseDuringApply(t *testing.T) {
	src := gradientPixmap(64, 64)
	p := Params{Brightness: 7, Saturation: 0.6, Contrast: 1.2, Hue: 20}
	want, err := NewEngine().Apply(src, p)
	if err != nil {
		t.Fatal(err)
	}

	for iter := range 200 {
		e := NewEngine(WithWorkers(4), WithParallelThreshold(0), WithBandsPerWorker(64))

		type result struct {
			pm  *Pixmap
			err error
		}
		done := make(chan result, 1)
		go func() {
			pm, err := e.Apply(src, p)
			done <- result{pm, err}
		}()
		runtime.Gosched()
		e.Close()

		select {
		case r := <-done:
			if r.err != nil {
				t.Fatalf("iteration %d: Apply() = %v", iter, r.err)
			}
			if !bytes.Equal(r.pm.Data(), want.Data()) {
				t.Fatalf("iteration %d: output differs from sequential", iter)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("iteration %d: Apply did not return after Close", iter)
		}
	}
}

func TestEngine_ApplyContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, e := range []*Engine{NewEngine(), NewEngine(WithWorkers(2), WithParallelThreshold(0))} {
		got, err := e.ApplyContext(ctx, gradientPixmap(10, 10), Params{Brightness: 5, Saturation: 1, Contrast: 1})
		if got != nil || !errors.Is(err, context.Canceled) {
			t.Errorf("ApplyContext(cancelled) = %v, %v; want nil, context.Canceled", got, err)
		}
		e.Close()
	}
}

func TestEngine_CenteredContrast(t *testing.T) {
	src := pixmapOf(
		color.NRGBA{R: 128, G: 128, B: 128, A: 255},
		color.NRGBA{R: 64, G: 192, B: 0, A: 255},
	)
	p := Params{Saturation: 1, Contrast: 2}

	centered, err := NewEngine(WithCenteredContrast(true)).Apply(src, p)
	if err != nil {
		t.Fatal(err)
	}
	if c := centered.NRGBAAt(0, 0); c.R != 128 || c.G != 128 || c.B != 128 {
		t.Errorf("centered: mid-gray = %v, want unchanged", c)
	}
	if c := centered.NRGBAAt(1, 0); c.R != 0 || c.G != 255 || c.B != 0 {
		t.Errorf("centered: (64,192,0) = %v, want (0,255,0)", c)
	}

	plain, err := NewEngine().Apply(src, p)
	if err != nil {
		t.Fatal(err)
	}
	if c := plain.NRGBAAt(0, 0); c.R != 255 {
		t.Errorf("zero-pivot: mid-gray R = %d, want 255", c.R)
	}
}

func TestEngine_Matrix(t *testing.T) {
	p := Params{Brightness: 3, Saturation: 0.7, Contrast: 1.4, Hue: 10}
	if NewEngine().Matrix(p) != p.Matrix() {
		t.Error("default engine should use Params.Matrix")
	}
	if NewEngine(WithCenteredContrast(true)).Matrix(p) != p.CenteredMatrix() {
		t.Error("centered engine should use Params.CenteredMatrix")
	}
}

func TestClampUint8(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-10, 0},
		{0, 0},
		{0.49, 0},
		{0.5, 1},
		{127.5, 128},
		{254.6, 255},
		{255, 255},
		{455, 255},
		{math.NaN(), 0},
		{math.Inf(1), 255},
		{math.Inf(-1), 0},
	}
	for _, tt := range tests {
		if got := clampUint8(tt.in); got != tt.want {
			t.Errorf("clampUint8(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func BenchmarkApply_1080p(b *testing.B) {
	src := gradientPixmap(1920, 1080)
	p := Params{Brightness: 10, Saturation: 1.2, Contrast: 1.1, Hue: 15}

	b.Run("sequential", func(b *testing.B) {
		e := NewEngine()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = e.Apply(src, p)
		}
	})

	b.Run("parallel", func(b *testing.B) {
		e := NewEngine(WithWorkers(0))
		defer e.Close()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = e.Apply(src, p)
		}
	})
}
