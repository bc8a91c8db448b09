// Package adjust applies brightness, saturation, contrast and hue
// adjustments to raster images with 4x5 color matrices.
//
// # Quick Start
//
//	import "github.com/gogpu/adjust"
//
//	src, err := adjust.Load("photo.jpg")
//	if err != nil {
//	    return err
//	}
//
//	// brightness, saturation, contrast, hue
//	dst, err := adjust.Apply(src, 10, 1.2, 1.1, 15)
//	if err != nil {
//	    return err
//	}
//	return dst.Save("edited.png", 0)
//
// # Color Matrices
//
// Each adjustment is a [ColorMatrix]: four rows (R, G, B, A) of four
// linear coefficients plus an offset in 8-bit channel units. The builders
// [SaturationMatrix], [ContrastBrightnessMatrix] and [HueRotationMatrix]
// produce the component matrices and [Compose] combines them. [Params]
// composes them in a fixed order: saturation, then contrast and
// brightness, then hue.
//
// Contrast scales channel values around zero, not mid-gray. Use
// [WithCenteredContrast] for the mid-gray variant.
//
// # Pixels
//
// A [Pixmap] stores straight (non-premultiplied) 8-bit RGBA. Results are
// rounded and clamped to [0, 255]; alpha is always copied unchanged.
//
// # Concurrency
//
// The package-level [Apply] runs on the calling goroutine. An [Engine]
// created with [WithWorkers] splits large images into row bands processed
// by a persistent worker pool; call [Engine.Close] when done.
package adjust

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
