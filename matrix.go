package adjust

import "math"

// ColorMatrix is a 4x5 affine color transformation in row-major order:
//
//	[R']   [m00 m01 m02 m03 m04]   [R]
//	[G'] = [m10 m11 m12 m13 m14] * [G]
//	[B']   [m20 m21 m22 m23 m24]   [B]
//	[A']   [m30 m31 m32 m33 m34]   [A]
//	                               [1]
//
// Index row*5+col addresses an entry. Columns 0-3 are the linear part and
// column 4 is an additive offset in 8-bit channel units ([0, 255]).
//
// ColorMatrix is an array, so values are copied on assignment and every
// composition returns a new matrix.
type ColorMatrix [20]float64

// Luminance weights used by the saturation matrix.
const (
	lumR = 0.213
	lumG = 0.715
	lumB = 0.072
)

// midGray is the pivot used by CenteredContrastBrightnessMatrix.
const midGray = 128

// IdentityMatrix returns the matrix that leaves every channel unchanged.
func IdentityMatrix() ColorMatrix {
	return ColorMatrix{
		1, 0, 0, 0, 0, // R
		0, 1, 0, 0, 0, // G
		0, 0, 1, 0, 0, // B
		0, 0, 0, 1, 0, // A
	}
}

// SaturationMatrix returns a luminance-preserving saturation matrix.
// saturation: 0 = grayscale, 1 = unchanged, >1 = oversaturated.
// Negative values are accepted and push colors past gray.
func SaturationMatrix(saturation float64) ColorMatrix {
	invSat := 1 - saturation
	r := lumR * invSat
	g := lumG * invSat
	b := lumB * invSat

	return ColorMatrix{
		r + saturation, g, b, 0, 0,
		r, g + saturation, b, 0, 0,
		r, g, b + saturation, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// GrayscaleMatrix returns SaturationMatrix(0).
func GrayscaleMatrix() ColorMatrix {
	return SaturationMatrix(0)
}

// ContrastBrightnessMatrix scales R, G and B by contrast and adds
// brightness (in 8-bit channel units) to each of them.
//
// The scale pivots on zero, not on mid-gray: raising contrast also darkens
// shadows toward black. Use CenteredContrastBrightnessMatrix for the
// mid-gray variant.
func ContrastBrightnessMatrix(contrast, brightness float64) ColorMatrix {
	return ColorMatrix{
		contrast, 0, 0, 0, brightness,
		0, contrast, 0, 0, brightness,
		0, 0, contrast, 0, brightness,
		0, 0, 0, 1, 0,
	}
}

// CenteredContrastBrightnessMatrix is ContrastBrightnessMatrix with the
// contrast scale pivoting on mid-gray (128): (c - 128) * contrast + 128 + brightness.
func CenteredContrastBrightnessMatrix(contrast, brightness float64) ColorMatrix {
	offset := midGray*(1-contrast) + brightness
	return ContrastBrightnessMatrix(contrast, offset)
}

// HueRotationMatrix rotates hue by the given angle in degrees using the
// NTSC luma/chroma decomposition. The result is periodic in 360 degrees
// and is the identity (within rounding) at 0.
func HueRotationMatrix(degrees float64) ColorMatrix {
	rad := degrees * math.Pi / 180
	c := math.Cos(rad)
	s := math.Sin(rad)

	return ColorMatrix{
		0.299 + 0.701*c + 0.168*s, 0.587 - 0.587*c + 0.330*s, 0.114 - 0.114*c - 0.497*s, 0, 0,
		0.299 - 0.299*c - 0.328*s, 0.587 + 0.413*c + 0.035*s, 0.114 - 0.114*c + 0.292*s, 0, 0,
		0.299 - 0.300*c + 1.25*s, 0.587 - 0.588*c - 1.05*s, 0.114 + 0.886*c - 0.203*s, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// At returns the entry at (row, col).
func (m ColorMatrix) At(row, col int) float64 {
	return m[row*5+col]
}

// Row returns row i (0 = R, 1 = G, 2 = B, 3 = A).
func (m ColorMatrix) Row(i int) [5]float64 {
	var r [5]float64
	copy(r[:], m[i*5:i*5+5])
	return r
}

// Multiply returns the homogeneous product m * other, treating both as
// 5x5 matrices whose implicit last row is [0 0 0 0 1]:
//
//	res[i][j] = Σk m[i][k]*other[k][j]              (j < 4)
//	res[i][4] = Σk m[i][k]*other[k][4] + m[i][4]
//
// Applying the result to a pixel is equivalent to applying other first
// and m second.
func (m ColorMatrix) Multiply(other ColorMatrix) ColorMatrix {
	var r ColorMatrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 5; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[row*5+k] * other[k*5+col]
			}
			if col == 4 {
				sum += m[row*5+4]
			}
			r[row*5+col] = sum
		}
	}
	return r
}

// Then returns the matrix that applies m first and next second.
func (m ColorMatrix) Then(next ColorMatrix) ColorMatrix {
	return next.Multiply(m)
}

// PostConcat replaces m with m.Then(next). It is the in-place accumulate
// step used while building a combined matrix; m must be owned by the caller.
func (m *ColorMatrix) PostConcat(next ColorMatrix) {
	*m = m.Then(next)
}

// Compose returns the single matrix equivalent to applying a and then b.
// Order matters: Compose(a, b) and Compose(b, a) differ in general.
func Compose(a, b ColorMatrix) ColorMatrix {
	return a.Then(b)
}

// Transform applies m to a color whose channels are in [0, 255].
// The result is not clamped.
func (m ColorMatrix) Transform(r, g, b, a float64) (float64, float64, float64, float64) {
	return m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4],
		m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9],
		m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14],
		m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19]
}

// IsIdentity reports whether m is exactly the identity matrix.
func (m ColorMatrix) IsIdentity() bool {
	return m == IdentityMatrix()
}

// PreservesAlpha reports whether the alpha row is exactly [0 0 0 1 0].
func (m ColorMatrix) PreservesAlpha() bool {
	return m[15] == 0 && m[16] == 0 && m[17] == 0 && m[18] == 1 && m[19] == 0
}

// ApproxEqual reports whether every entry of m is within eps of other.
func (m ColorMatrix) ApproxEqual(other ColorMatrix, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-other[i]) > eps {
			return false
		}
	}
	return true
}
