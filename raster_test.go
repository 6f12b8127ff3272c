package mxw01

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/pkg/errors"
)

func TestRasterizeSize(t *testing.T) {
	cases := []struct {
		width, height int
		minLines      int
		want          int
	}{
		{384, 100, 0, 100},
		{100, 50, 0, 192},
		{768, 10, 0, 5},
		{1000, 1, 0, 1},
		{384, 20, 86, 86},
		{192, 100, 86, 200},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%dx%d_min%d", c.width, c.height, c.minLines), func(t *testing.T) {
			img := uniform(c.width, c.height, black)
			r, err := Rasterize(img, PrintOptions{MinLines: c.minLines})
			if err != nil {
				t.Fatal(err)
			}
			if r.Bounds().Dx() != LinePixels || r.Bounds().Dy() != c.want {
				t.Errorf("Rasterize(%dx%d) is %v, want %dx%d", c.width, c.height, r.Bounds().Size(), LinePixels, c.want)
			}
		})
	}
}

func TestRasterizePadding(t *testing.T) {
	r, err := Rasterize(uniform(LinePixels, 10, black), PrintOptions{MinLines: 20})
	if err != nil {
		t.Fatal(err)
	}
	if c := r.NRGBAAt(0, 5); c.R != 0 {
		t.Errorf("image pixel is %v, want black", c)
	}
	if c := r.NRGBAAt(0, 15); c != white {
		t.Errorf("padding pixel is %v, want white", c)
	}
}

func TestRasterizeFlattensAlpha(t *testing.T) {
	r, err := Rasterize(uniform(LinePixels, 4, color.NRGBA{}), PrintOptions{})
	if err != nil {
		t.Fatal(err)
	}
	packed := HalftoneImage(r, Monochrome)
	if !bytes.Equal(packed, repeat(0, 4*48)) {
		t.Errorf("transparent image printed % X", packed)
	}
}

func TestRasterizeDither(t *testing.T) {
	gray := uniform(LinePixels, 8, color.NRGBA{R: 100, G: 100, B: 100, A: 0xFF})
	r, err := Rasterize(gray, PrintOptions{Dither: "bayer4x4"})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < len(r.Pix); i += 4 {
		if v := r.Pix[i]; v != 0 && v != 0xFF {
			t.Fatalf("dithered pixel %d has level %d, want black or white", i/4, v)
		}
	}
	_, err = Rasterize(gray, PrintOptions{Dither: "sierra"})
	if errors.Cause(err) != ErrUnknownDither {
		t.Errorf("Rasterize with unknown dither returned %v, want ErrUnknownDither", err)
	}
}

func TestRasterizeEmpty(t *testing.T) {
	_, err := Rasterize(image.NewNRGBA(image.Rect(0, 0, 0, 0)), PrintOptions{})
	if err == nil {
		t.Errorf("Rasterize of an empty image succeeded")
	}
}

func TestDecode(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, uniform(20, 10, black)); err != nil {
		t.Fatal(err)
	}
	img, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 10 {
		t.Errorf("decoded image is %v, want 20x10", img.Bounds().Size())
	}
}
