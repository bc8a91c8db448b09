package adjust

// Params holds the four scalar adjustments.
//
// No value is rejected or clamped: extreme inputs simply produce extreme
// images.
type Params struct {
	// Brightness is added to R, G and B in 8-bit units. Typical range
	// [-255, 255], neutral 0.
	Brightness float64

	// Saturation: 0 = grayscale, 1 = unchanged, >1 = oversaturated.
	Saturation float64

	// Contrast scales R, G and B. Typical range [0.5, 2], neutral 1.
	Contrast float64

	// Hue rotation in degrees. Typical range [-180, 180], neutral 0.
	Hue float64
}

// NeutralParams returns the parameter set that leaves an image unchanged.
func NeutralParams() Params {
	return Params{Brightness: 0, Saturation: 1, Contrast: 1, Hue: 0}
}

// IsNeutral reports whether p equals NeutralParams.
func (p Params) IsNeutral() bool {
	return p == NeutralParams()
}

// Matrix returns the combined color matrix for p: saturation first, then
// contrast and brightness, then hue. The hue step is skipped when Hue is 0.
func (p Params) Matrix() ColorMatrix {
	return p.matrix(false)
}

// CenteredMatrix is Matrix with contrast pivoting on mid-gray.
func (p Params) CenteredMatrix() ColorMatrix {
	return p.matrix(true)
}

func (p Params) matrix(centered bool) ColorMatrix {
	m := SaturationMatrix(p.Saturation)

	if centered {
		m.PostConcat(CenteredContrastBrightnessMatrix(p.Contrast, p.Brightness))
	} else {
		m.PostConcat(ContrastBrightnessMatrix(p.Contrast, p.Brightness))
	}

	if p.Hue != 0 {
		m.PostConcat(HueRotationMatrix(p.Hue))
	}
	return m
}
