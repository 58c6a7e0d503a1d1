package render

import "fmt"

// RGB is an opaque 8-bit color.
type RGB struct{ R, G, B uint8 }

// Hex returns the color as #rrggbb.
func (c RGB) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

var (
	DarkBlue  = RGB{0, 0, 139}
	Teal      = RGB{0, 128, 128}
	EdgeColor = RGB{0xb2, 0xeb, 0xf2}
	LineColor = RGB{0, 0, 255}
)

// Gradient returns the color of component i out of k, interpolated linearly
// from DarkBlue to Teal. With a single component it returns DarkBlue.
func Gradient(i, k int) RGB {
	if k <= 1 {
		return DarkBlue
	}
	t := float64(i) / float64(k-1)
	return RGB{
		R: lerp(DarkBlue.R, Teal.R, t),
		G: lerp(DarkBlue.G, Teal.G, t),
		B: lerp(DarkBlue.B, Teal.B, t),
	}
}

// lerp truncates toward zero.
func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + t*(float64(b)-float64(a)))
}
