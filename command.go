package mxw01

import (
	"fmt"

	"github.com/pkg/errors"
)

//go:generate stringer -type Command -trimprefix Cmd

// Command represents a command identifier understood by MXW01 firmware.
type Command byte

const (
	CmdGetStatus      Command = 0xA1
	CmdPrintIntensity Command = 0xA2
	CmdEjectPaper     Command = 0xA3
	CmdRetractPaper   Command = 0xA4
	CmdQueryCount     Command = 0xA7
	CmdPrint          Command = 0xA9
	CmdPrintComplete  Command = 0xAA
	CmdBatteryLevel   Command = 0xAB
	CmdCancelPrint    Command = 0xAC
	CmdPrintDataFlush Command = 0xAD
	CmdGetPrintType   Command = 0xB0
	CmdGetVersion     Command = 0xB1
)

// Mode is the print mode byte sent with the print-start command.
type Mode byte

const (
	Monochrome Mode = 0x0 // 1 bit per pixel
	Grayscale  Mode = 0x2 // 4 bits per pixel
)

func (m Mode) String() string {
	switch m {
	case Monochrome:
		return "1bpp"
	case Grayscale:
		return "4bpp"
	default:
		return fmt.Sprintf("Mode(%d)", byte(m))
	}
}

// ParseMode converts "1bpp" or "4bpp" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "1bpp", "mono", "monochrome":
		return Monochrome, nil
	case "4bpp", "gray", "grayscale":
		return Grayscale, nil
	}
	return 0, errors.Errorf("unknown print mode %q", s)
}

// LinePixels is the printer's native line width.
const LinePixels = 384

// BytesPerLine returns the packed row width for an image of the given width.
func (m Mode) BytesPerLine(width int) int {
	if m == Grayscale {
		return width / 2
	}
	return width / 8
}
