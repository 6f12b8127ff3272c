package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/ecc1/mxw01"
)

var (
	address = flag.String("a", "", "connect to printer by MAC `address`")
	name    = flag.String("n", mxw01.DeviceName, "advertised printer `name`")
	hci     = flag.Int("hci", 0, "HCI device `index`")
	timeout = flag.Duration("t", 30*time.Second, "connection timeout")
)

func main() {
	flag.Parse()
	dev, err := mxw01.OpenDevice(*hci)
	if err != nil {
		log.Fatal(err)
	}
	defer dev.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	var t *mxw01.BLE
	if *address != "" {
		t, err = mxw01.Dial(ctx, *address)
	} else {
		t, err = mxw01.Connect(ctx, *name)
	}
	if err != nil {
		log.Fatal(err)
	}
	p := mxw01.New(t, func(s string) { log.Print(s) })
	defer p.Close()
	st, err := p.Connect(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("address: %s\n", t.Address())
	fmt.Printf("status: %s\n", st.StatusText())
	fmt.Printf("temperature: %d°C\n", st.Temperature)
	level, err := p.BatteryLevel(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("battery: %d%%\n", level)
	v, err := p.Version(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("version: %s (%s)\n", v.Version, v.PrinterTypeText())
	pt, err := p.PrintType(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("print type: %s\n", pt.PrinterTypeText())
	count, err := p.QueryCount(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("count: % X\n", count)
}
