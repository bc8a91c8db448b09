// Command coloradjust applies brightness, saturation, contrast and hue
// adjustments to an image file.
//
// Usage:
//
//	coloradjust -in photo.jpg -out edited.png -saturation 1.3 -hue 20
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/adjust"
)

func main() {
	var (
		in         = flag.String("in", "", "input image (png, jpeg, gif, bmp, tiff, webp)")
		out        = flag.String("out", "adjusted.png", "output image (png, jpeg, bmp, tiff)")
		brightness = flag.Float64("brightness", 0, "additive brightness in 8-bit units, -255..255")
		saturation = flag.Float64("saturation", 1, "saturation: 0 = grayscale, 1 = unchanged")
		contrast   = flag.Float64("contrast", 1, "contrast scale: 1 = unchanged")
		hue        = flag.Float64("hue", 0, "hue rotation in degrees, -180..180")
		centered   = flag.Bool("centered", false, "scale contrast around mid-gray instead of zero")
		workers    = flag.Int("workers", 0, "worker goroutines (0 = all CPUs, 1 = sequential)")
		preview    = flag.Int("preview", 0, "downscale to at most this width before adjusting (0 = full size)")
		quality    = flag.Int("quality", 90, "JPEG quality 1-100")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	adjust.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	src, err := adjust.Load(*in)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *in, err)
	}
	if *preview > 0 {
		src = src.Scaled(*preview)
	}

	engine := adjust.NewEngine(
		adjust.WithWorkers(*workers),
		adjust.WithCenteredContrast(*centered),
	)
	defer engine.Close()

	params := adjust.Params{
		Brightness: *brightness,
		Saturation: *saturation,
		Contrast:   *contrast,
		Hue:        *hue,
	}

	start := time.Now()
	dst, err := engine.ApplyContext(ctx, src, params)
	if err != nil {
		log.Fatalf("Failed to adjust %s: %v", *in, err)
	}
	elapsed := time.Since(start)

	if err := dst.Save(*out, *quality); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(os.Stderr, "Adjusted %d pixels (%dx%d) in %v with %d worker(s), saved to %s\n",
		dst.Width()*dst.Height(), dst.Width(), dst.Height(),
		elapsed.Round(time.Microsecond), engine.Workers(), *out)
	logger.Debug("coloradjust: done", "params", params, "matrix", engine.Matrix(params))
}
