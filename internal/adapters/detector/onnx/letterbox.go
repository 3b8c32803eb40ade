package onnx

import (
	"image"
	"math"

	"github.com/nfnt/resize"
)

// padValue is the ultralytics letterbox grey (114/255)
const padValue = float32(114.0 / 255.0)

// frame records how an image was fitted into the square model input
type frame struct {
	scale      float64
	padX, padY float64
	srcW, srcH int
}

// fit computes the scale and padding for a w*h image inside a size*size square.
// Left/top padding is whole pixels, rounded as round(d/2 - 0.1) the way the
// ultralytics letterbox does, so odd remainders go to the right/bottom
func fit(w, h, size int) frame {
	s := float64(size) / float64(max(w, h))
	nw, nh := scaled(w, s), scaled(h, s)
	return frame{
		scale: s,
		padX:  pad(size - nw),
		padY:  pad(size - nh),
		srcW:  w,
		srcH:  h,
	}
}

func pad(d int) float64 { return math.Round(float64(d)/2 - 0.1) }

func scaled(n int, s float64) int {
	v := int(float64(n)*s + 0.5)
	if v < 1 {
		return 1
	}
	return v
}

// toSource maps a point in model input space back to source pixels, clamped to the image
func (f frame) toSource(x, y float64) (float64, float64) {
	sx := (x - f.padX) / f.scale
	sy := (y - f.padY) / f.scale
	return clamp(sx, 0, float64(f.srcW)), clamp(sy, 0, float64(f.srcH))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// letterbox resizes img to fit size*size keeping aspect ratio, pads with grey and
// returns planar RGB in [0,1] (CHW)
func letterbox(img image.Image, size int) ([]float32, frame) {
	b := img.Bounds()
	f := fit(b.Dx(), b.Dy(), size)
	nw, nh := scaled(b.Dx(), f.scale), scaled(b.Dy(), f.scale)
	resized := resize.Resize(uint(nw), uint(nh), img, resize.Bilinear)

	plane := size * size
	data := make([]float32, 3*plane)
	for i := range data {
		data[i] = padValue
	}

	ox, oy := int(f.padX), int(f.padY)
	rb := resized.Bounds()
	for y := 0; y < rb.Dy(); y++ {
		for x := 0; x < rb.Dx(); x++ {
			r, g, bl, _ := resized.At(rb.Min.X+x, rb.Min.Y+y).RGBA()
			px := (oy+y)*size + ox + x
			data[px] = float32(r) / 65535.0
			data[plane+px] = float32(g) / 65535.0
			data[2*plane+px] = float32(bl) / 65535.0
		}
	}
	return data, f
}
