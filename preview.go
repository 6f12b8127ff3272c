package mxw01

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Preview renders packed printer lines as they would appear on paper.
func Preview(packed []byte, width int, mode Mode) *image.Gray {
	bpl := mode.BytesPerLine(width)
	height := 0
	if bpl > 0 {
		height = len(packed) / bpl
	}
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		line := packed[y*bpl : (y+1)*bpl]
		for x := 0; x < width; x++ {
			var level byte
			if mode == Grayscale {
				shift := uint(4 - (x%2)*4)
				level = (line[x/2] >> shift & 0xF) * 17
			} else if line[x/8]&(1<<uint(x%8)) != 0 {
				level = 0xFF
			}
			img.SetGray(x, y, color.Gray{Y: 0xFF - level})
		}
	}
	return img
}

// SavePreview writes a preview of packed lines to an image file
// whose format is chosen by its extension.
func SavePreview(path string, packed []byte, mode Mode) error {
	err := imaging.Save(Preview(packed, LinePixels, mode), path)
	return errors.Wrapf(err, "saving preview %s", path)
}
