package mxw01

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math/bits"
	"testing"
)

func uniform(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

var (
	white = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	black = color.NRGBA{A: 0xFF}
)

func repeat(b byte, n int) []byte {
	return bytes.Repeat([]byte{b}, n)
}

func TestHalftoneUniform(t *testing.T) {
	cases := []struct {
		name   string
		color  color.NRGBA
		mode   Mode
		height int
		packed []byte
	}{
		{"white_1bpp", white, Monochrome, 1, repeat(0x00, 48)},
		{"black_1bpp", black, Monochrome, 3, repeat(0xFF, 3*48)},
		{"white_4bpp", white, Grayscale, 2, repeat(0x00, 2*192)},
		{"black_4bpp", black, Grayscale, 2, repeat(0xFF, 2*192)},
		// 255-223 = 32 quantizes exactly to level 2 with no error.
		{"gray32_4bpp", color.NRGBA{R: 223, G: 223, B: 223, A: 0xFF}, Grayscale, 4, repeat(0x22, 4*192)},
		// Alpha is ignored.
		{"transparent_black_1bpp", color.NRGBA{}, Monochrome, 1, repeat(0xFF, 48)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			img := uniform(LinePixels, c.height, c.color)
			packed := Halftone(img, c.mode.BytesPerLine(LinePixels), c.mode)
			if !bytes.Equal(packed, c.packed) {
				t.Errorf("Halftone(%s) == % X, want % X", c.name, packed, c.packed)
			}
		})
	}
}

// pattern returns a raster with a distinct color at every pixel.
func pattern(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g := (x*37 + y*91 + 20) % 256
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(g),
				G: uint8((g*3 + y*17) % 256),
				B: uint8((g + x*11) % 256),
				A: 0xFF,
			})
		}
	}
	return img
}

func TestHalftoneDiffusion(t *testing.T) {
	cases := []struct {
		mode   Mode
		packed []byte
	}{
		{Monochrome, []byte{
			0xAB, 0x4A,
			0x54, 0xBA,
			0x55, 0xA5,
		}},
		{Grayscale, []byte{
			0xEA, 0xB7, 0x39, 0x6C, 0x89, 0x5C, 0x74, 0xA6,
			0x95, 0x62, 0xEA, 0x67, 0x3A, 0x6C, 0x89, 0xB7,
			0x51, 0xD9, 0xA6, 0x78, 0x4B, 0x68, 0x9B, 0x67,
		}},
	}
	for _, c := range cases {
		t.Run(c.mode.String(), func(t *testing.T) {
			packed := HalftoneImage(pattern(16, 3), c.mode)
			if !bytes.Equal(packed, c.packed) {
				t.Errorf("HalftoneImage(%v) == % X, want % X", c.mode, packed, c.packed)
			}
		})
	}
}

func TestHalftoneBitOrder(t *testing.T) {
	cases := []struct {
		mode   Mode
		x      int
		packed []byte
	}{
		{Monochrome, 0, []byte{0x01, 0x00}},
		{Monochrome, 1, []byte{0x02, 0x00}},
		{Monochrome, 7, []byte{0x80, 0x00}},
		{Monochrome, 8, []byte{0x00, 0x01}},
		{Monochrome, 15, []byte{0x00, 0x80}},
		{Grayscale, 0, []byte{0xF0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},
		{Grayscale, 1, []byte{0x0F, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},
		{Grayscale, 14, []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xF0}},
		{Grayscale, 15, []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x0F}},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%v_x%d", c.mode, c.x), func(t *testing.T) {
			img := uniform(16, 1, white)
			img.SetNRGBA(c.x, 0, black)
			packed := HalftoneImage(img, c.mode)
			if !bytes.Equal(packed, c.packed) {
				t.Errorf("black pixel at x=%d packed as % X, want % X", c.x, packed, c.packed)
			}
		})
	}
}

func TestHalftoneSize(t *testing.T) {
	for _, mode := range []Mode{Monochrome, Grayscale} {
		for _, width := range []int{8, 16, 384} {
			for _, height := range []int{1, 2, 7, 50} {
				t.Run(fmt.Sprintf("%v_%dx%d", mode, width, height), func(t *testing.T) {
					img := uniform(width, height, color.NRGBA{R: 90, G: 140, B: 200, A: 0xFF})
					packed := HalftoneImage(img, mode)
					want := mode.BytesPerLine(width) * height
					if len(packed) != want {
						t.Errorf("len(packed) == %d, want %d", len(packed), want)
					}
				})
			}
		}
	}
}

func TestHalftoneMidGray(t *testing.T) {
	const height = 64
	img := uniform(LinePixels, height, color.NRGBA{R: 128, G: 128, B: 128, A: 0xFF})
	packed := HalftoneImage(img, Monochrome)
	set := 0
	for _, b := range packed {
		set += bits.OnesCount8(b)
	}
	total := LinePixels * height
	if set < total*2/5 || set > total*3/5 {
		t.Errorf("%d of %d dots set for 50%% gray", set, total)
	}
}

func TestHalftoneDeterministic(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, LinePixels, 16))
	for i := range src.Pix {
		src.Pix[i] = byte(i * 31)
	}
	for _, mode := range []Mode{Monochrome, Grayscale} {
		a := cloneNRGBA(src)
		b := cloneNRGBA(src)
		if !bytes.Equal(HalftoneImage(a, mode), HalftoneImage(b, mode)) {
			t.Errorf("%v conversion is not deterministic", mode)
		}
	}
}

func TestHalftoneSubImage(t *testing.T) {
	// Diffusion must stay inside the bounds of a sub-image.
	big := uniform(32, 4, white)
	sub := big.SubImage(image.Rect(8, 1, 16, 3)).(*image.NRGBA)
	for y := 1; y < 3; y++ {
		for x := 8; x < 16; x++ {
			sub.SetNRGBA(x, y, color.NRGBA{R: 100, G: 100, B: 100, A: 0xFF})
		}
	}
	HalftoneImage(sub, Monochrome)
	for y := 0; y < 4; y++ {
		for x := 0; x < 32; x++ {
			if image.Pt(x, y).In(sub.Bounds()) {
				continue
			}
			if c := big.NRGBAAt(x, y); c != white {
				t.Fatalf("pixel (%d, %d) outside sub-image changed to %v", x, y, c)
			}
		}
	}
}

func cloneNRGBA(img *image.NRGBA) *image.NRGBA {
	c := *img
	c.Pix = append([]uint8(nil), img.Pix...)
	return &c
}
