package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/ecc1/mxw01"
	"github.com/pkg/errors"
)

// Firmware refuses to print anything shorter.
const minLines = 86

var (
	address   = flag.String("a", "", "connect to printer by MAC `address`")
	name      = flag.String("n", mxw01.DeviceName, "advertised printer `name`")
	hci       = flag.Int("hci", 0, "HCI device `index`")
	intensity = flag.Int("i", mxw01.DefaultIntensity, "print intensity (0-100)")
	mode      = flag.String("m", "1bpp", "print mode: 1bpp or 4bpp")
	method    = flag.String("d", "", "dither method: "+strings.Join(mxw01.DitherMethods[1:], ", "))
	lines     = flag.Int("min", minLines, "minimum number of lines to print")
	output    = flag.String("o", "", "write a preview to `file` instead of printing")
	timeout   = flag.Duration("t", mxw01.DefaultTimeout, "response timeout")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [options] image-file (or - for stdin)\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	m, err := mxw01.ParseMode(*mode)
	if err != nil {
		log.Fatal(err)
	}
	img, err := loadImage(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	opts := mxw01.PrintOptions{
		Intensity: *intensity,
		Mode:      m,
		Dither:    *method,
		MinLines:  *lines,
	}
	if *output != "" {
		packed, err := mxw01.Prepare(img, opts)
		if err != nil {
			log.Fatal(err)
		}
		if err := mxw01.SavePreview(*output, packed, m); err != nil {
			log.Fatal(err)
		}
		return
	}
	if err := printImage(img, opts); err != nil {
		log.Fatal(err)
	}
}

func loadImage(path string) (image.Image, error) {
	if path == "-" {
		return mxw01.Decode(os.Stdin)
	}
	return mxw01.Load(path)
}

func printImage(img image.Image, opts mxw01.PrintOptions) error {
	dev, err := mxw01.OpenDevice(*hci)
	if err != nil {
		return err
	}
	defer dev.Stop()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	dialCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	var t *mxw01.BLE
	if *address != "" {
		t, err = mxw01.Dial(dialCtx, *address)
	} else {
		t, err = mxw01.Connect(dialCtx, *name)
	}
	if err != nil {
		return err
	}
	p := mxw01.New(t, func(s string) { log.Print(s) })
	defer p.Close()
	p.Timeout = *timeout
	if _, err := p.Connect(ctx); err != nil {
		return err
	}
	result, err := p.Print(ctx, img, opts)
	if err != nil {
		return err
	}
	if !result.Success {
		return errors.Errorf("printer reported failure: % X", result.Raw)
	}
	stats := p.Statistics()
	log.Printf("sent %d bytes in %d packets", stats.Bytes.Sent, stats.Packets.Sent)
	return nil
}
