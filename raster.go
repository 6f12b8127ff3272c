package mxw01

import (
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
	"github.com/makeworld-the-better-one/dither"
	"github.com/pkg/errors"
)

// ErrUnknownDither is returned for an unrecognized dither method.
var ErrUnknownDither = errors.New("unknown dither method")

// DitherMethods lists the names accepted in PrintOptions.Dither.
// The empty name uses only the built-in error diffusion.
var DitherMethods = []string{"", "floyd", "atkinson", "jjn", "bayer2x2", "bayer4x4", "bayer8x8", "bayer16x16"}

// Load opens and decodes an image file, applying EXIF orientation.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return img, nil
}

// Decode reads an image from r, applying EXIF orientation.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(err, "decoding image")
	}
	return img, nil
}

// Rasterize scales img to the printer's line width, keeping its aspect ratio,
// and flattens it onto white. The result is padded with white lines up to
// opts.MinLines, then pre-dithered if opts.Dither names a method.
func Rasterize(img image.Image, opts PrintOptions) (*image.NRGBA, error) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, errors.Errorf("empty %dx%d image", b.Dx(), b.Dy())
	}
	height := b.Dy() * LinePixels / b.Dx()
	if height < 1 {
		height = 1
	}
	scaled := imaging.Resize(img, LinePixels, height, imaging.Lanczos)
	if height < opts.MinLines {
		height = opts.MinLines
	}
	canvas := imaging.New(LinePixels, height, color.White)
	raster := imaging.Overlay(canvas, scaled, image.Pt(0, 0), 1.0)
	if opts.Dither == "" {
		return raster, nil
	}
	d, err := newDitherer(opts.Dither, opts.Mode)
	if err != nil {
		return nil, err
	}
	return imaging.Clone(d.DitherCopy(raster)), nil
}

func newDitherer(method string, mode Mode) (*dither.Ditherer, error) {
	palette := []color.Color{color.Black, color.White}
	strength := float32(1.0)
	if mode == Grayscale {
		palette = make([]color.Color, 16)
		for i := range palette {
			palette[i] = color.Gray{Y: uint8(255 - i*17)}
		}
		strength = 0.2
	}
	d := dither.NewDitherer(palette)
	switch method {
	case "floyd":
		d.Matrix = dither.FloydSteinberg
	case "atkinson":
		d.Matrix = dither.Atkinson
	case "jjn":
		d.Matrix = dither.JarvisJudiceNinke
	case "bayer2x2":
		d.Mapper = dither.Bayer(2, 2, strength)
	case "bayer4x4":
		d.Mapper = dither.Bayer(4, 4, strength)
	case "bayer8x8":
		d.Mapper = dither.Bayer(8, 8, strength)
	case "bayer16x16":
		d.Mapper = dither.Bayer(16, 16, strength)
	default:
		return nil, errors.Wrapf(ErrUnknownDither, "%q", method)
	}
	return d, nil
}
