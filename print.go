package mxw01

import (
	"context"
	"fmt"
	"image"
	"log"

	"github.com/pkg/errors"
)

const (
	// DefaultIntensity is the print darkness used by the commands.
	DefaultIntensity = 80

	printStartFlag = 0x30
)

// PrintOptions control how an image is converted and printed.
type PrintOptions struct {
	Intensity int    // 0 to 100
	Mode      Mode   // Monochrome or Grayscale
	Dither    string // optional pre-dither method, see DitherMethods
	MinLines  int    // pad shorter images with blank lines
}

// Prepare converts img to packed printer lines.
func Prepare(img image.Image, opts PrintOptions) ([]byte, error) {
	raster, err := Rasterize(img, opts)
	if err != nil {
		return nil, err
	}
	return HalftoneImage(raster, opts.Mode), nil
}

// Print converts img and prints it. The result is the printer's
// print-complete notification.
func (p *Printer) Print(ctx context.Context, img image.Image, opts PrintOptions) (Notification, error) {
	opts.Intensity = clampIntensity(opts.Intensity)
	raster, err := Rasterize(img, opts)
	if err != nil {
		return Notification{}, err
	}
	packed := HalftoneImage(raster, opts.Mode)
	p.progress("Preparing image")
	return p.PrintPacked(ctx, packed, opts.Mode, opts.Intensity)
}

// PrintPacked prints lines already packed for the given mode.
func (p *Printer) PrintPacked(ctx context.Context, packed []byte, mode Mode, intensity int) (Notification, error) {
	bpl := mode.BytesPerLine(LinePixels)
	if len(packed)%bpl != 0 {
		return Notification{}, errors.Errorf("%d-byte buffer is not a whole number of %d-byte lines", len(packed), bpl)
	}
	lines := len(packed) / bpl
	if lines > 0xFFFF {
		return Notification{}, errors.Errorf("%d lines exceeds printer limit", lines)
	}
	_, err := p.SendCommand(ctx, CmdPrintIntensity, []byte{byte(clampIntensity(intensity))}, false)
	if err != nil {
		return Notification{}, err
	}
	start := append(marshalUint16(uint16(lines)), printStartFlag, byte(mode))
	if _, err := p.SendCommand(ctx, CmdPrint, start, true); err != nil {
		return Notification{}, err
	}
	p.progress("Printing")
	for i := 0; i < lines; i++ {
		line := packed[i*bpl : (i+1)*bpl]
		if verbose {
			log.Printf("line %d: % X", i, line)
		}
		if err := p.transport.WriteData(line); err != nil {
			return Notification{}, errors.Wrapf(err, "writing line %d", i)
		}
		p.sent(len(line))
	}
	if _, err := p.SendCommand(ctx, CmdPrintDataFlush, []byte{0x00}, false); err != nil {
		return Notification{}, err
	}
	st, err := p.Status(ctx)
	if err != nil {
		return Notification{}, err
	}
	p.progress(fmt.Sprintf("Print finished %d%% %d°C", st.BatteryLevel, st.Temperature))
	return p.SendCommand(ctx, CmdPrintComplete, []byte{0x00}, true)
}

func clampIntensity(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
