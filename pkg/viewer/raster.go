package viewer

import (
	"image"
	"image/color"
	"math"
)

// Frame is a color target with a depth buffer
type Frame struct {
	Image *image.NRGBA
	depth []float64
}

// NewFrame allocates a width x height frame
func NewFrame(width, height int) *Frame {
	width = max(width, 1)
	height = max(height, 1)
	return &Frame{
		Image: image.NewNRGBA(image.Rect(0, 0, width, height)),
		depth: make([]float64, width*height),
	}
}

// Size returns the frame dimensions
func (f *Frame) Size() (int, int) {
	b := f.Image.Bounds()
	return b.Dx(), b.Dy()
}

// Clear fills the frame with bg and resets depth to infinity
func (f *Frame) Clear(bg color.NRGBA) {
	pix := f.Image.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = bg.R, bg.G, bg.B, bg.A
	}
	for i := range f.depth {
		f.depth[i] = math.Inf(1)
	}
}

// screenVertex is a projected triangle corner
type screenVertex struct {
	x, y  float64
	depth float64 // view space distance along the camera axis
	u, v  float64
}

// fragmentFunc shades one pixel from perspective-correct texture coordinates
type fragmentFunc func(u, v float64) color.NRGBA

// fillTriangle rasterizes a triangle with depth testing. Pixel centers inside the
// triangle or on its edges are filled; closer depth wins.
func (f *Frame) fillTriangle(a, b, c screenVertex, shade fragmentFunc) {
	area := edge(a, b, c.x, c.y)
	if area == 0 {
		return
	}

	w, h := f.Size()
	minX := max(0, int(math.Floor(math.Min(a.x, math.Min(b.x, c.x)))))
	maxX := min(w-1, int(math.Ceil(math.Max(a.x, math.Max(b.x, c.x)))))
	minY := max(0, int(math.Floor(math.Min(a.y, math.Min(b.y, c.y)))))
	maxY := min(h-1, int(math.Ceil(math.Max(a.y, math.Max(b.y, c.y)))))
	if minX > maxX || minY > maxY {
		return
	}

	// interpolate 1/z and attribute/z so texture coordinates stay perspective correct
	iza, izb, izc := 1/a.depth, 1/b.depth, 1/c.depth

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			w0 := edge(b, c, px, py) / area
			w1 := edge(c, a, px, py) / area
			w2 := edge(a, b, px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			iz := w0*iza + w1*izb + w2*izc
			z := 1 / iz
			idx := y*w + x
			if z >= f.depth[idx] {
				continue
			}

			u := (w0*a.u*iza + w1*b.u*izb + w2*c.u*izc) * z
			v := (w0*a.v*iza + w1*b.v*izb + w2*c.v*izc) * z
			col := shade(u, v)
			if col.A == 0 {
				continue
			}

			f.depth[idx] = z
			f.Image.SetNRGBA(x, y, col)
		}
	}
}

// edge is twice the signed area of (a, b, p)
func edge(a, b screenVertex, px, py float64) float64 {
	return (px-a.x)*(b.y-a.y) - (py-a.y)*(b.x-a.x)
}

// sampleTexture returns the texel at (u, v) with wrap-around; v runs down the image
func sampleTexture(img image.Image, u, v float64) color.NRGBA {
	b := img.Bounds()
	u -= math.Floor(u)
	v -= math.Floor(v)
	x := b.Min.X + min(b.Dx()-1, int(u*float64(b.Dx())))
	y := b.Min.Y + min(b.Dy()-1, int(v*float64(b.Dy())))
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}
