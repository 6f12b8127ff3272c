package mxw01

import (
	"image"
	"math"
)

// Error diffusion weights, in sixteenths.
var diffusion = []struct {
	dx, dy int
	weight float64
}{
	{1, 0, 7.0 / 16},
	{-1, 1, 3.0 / 16},
	{0, 1, 5.0 / 16},
	{1, 1, 1.0 / 16},
}

// Halftone converts img to packed printer lines using error diffusion.
// Monochrome packs 8 pixels per byte, least significant bit first;
// grayscale packs 2 pixels per byte, high nibble first.
// The pixels of img are overwritten as quantization error is diffused,
// so the caller must not share img while Halftone runs.
func Halftone(img *image.NRGBA, bytesPerLine int, mode Mode) []byte {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	out := make([]byte, bytesPerLine*height)
	for y := 0; y < height; y++ {
		line := out[y*bytesPerLine : (y+1)*bytesPerLine]
		for x := 0; x < width; x++ {
			i := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			brightness := 255 - average(img.Pix[i:i+3])
			level := quantize(brightness, mode)
			diffuse(img, x, y, brightness-level)
			if mode == Grayscale {
				k := x / 2
				if k < len(line) {
					shift := uint(4 - (x%2)*4)
					line[k] |= byte(int(level)/16&0xF) << shift
				}
			} else if level > 127 {
				k := x / 8
				if k < len(line) {
					line[k] |= 1 << uint(x%8)
				}
			}
		}
	}
	return out
}

// HalftoneImage converts a raster for the given mode, using the
// mode's line width for the image.
func HalftoneImage(img *image.NRGBA, mode Mode) []byte {
	return Halftone(img, mode.BytesPerLine(img.Bounds().Dx()), mode)
}

func quantize(v float64, mode Mode) float64 {
	if mode == Grayscale {
		return clamp(math.Round(v/16) * 16)
	}
	if v < 128 {
		return 0
	}
	return 255
}

// diffuse spreads err over the neighbors of (x, y) that lie inside img.
// Each neighbor becomes gray: its RGB average less its share of err.
func diffuse(img *image.NRGBA, x, y int, err float64) {
	b := img.Bounds()
	for _, d := range diffusion {
		nx, ny := x+d.dx, y+d.dy
		if nx < 0 || nx >= b.Dx() || ny >= b.Dy() {
			continue
		}
		i := img.PixOffset(b.Min.X+nx, b.Min.Y+ny)
		v := clamp(average(img.Pix[i:i+3]) - math.Floor(err*d.weight))
		c := uint8(math.Round(v))
		img.Pix[i] = c
		img.Pix[i+1] = c
		img.Pix[i+2] = c
	}
}

func average(rgb []uint8) float64 {
	return (float64(rgb[0]) + float64(rgb[1]) + float64(rgb[2])) / 3
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
