package mxw01

import (
	"context"
	"log"

	"github.com/go-ble/ble"
	"github.com/pkg/errors"
)

// DeviceName is the name the printer advertises.
const DeviceName = "MXW01"

// GATT service and characteristics of the printer.
var (
	serviceUUID = ble.UUID16(0xAE30)
	commandUUID = ble.UUID16(0xAE01)
	notifyUUID  = ble.UUID16(0xAE02)
	dataUUID    = ble.UUID16(0xAE03)
)

const (
	defaultMTU = 23
	requestMTU = 512
	attHeader  = 3
)

// BLE is a Transport over a go-ble client connection.
type BLE struct {
	client  ble.Client
	command *ble.Characteristic
	notify  *ble.Characteristic
	data    *ble.Characteristic
	mtu     int
}

// Connect scans for a printer advertising the given name and connects to it.
// The default ble.Device must already be set.
func Connect(ctx context.Context, name string) (*BLE, error) {
	client, err := ble.Connect(ctx, func(a ble.Advertisement) bool {
		return a.LocalName() == name
	})
	if err != nil {
		return nil, errors.Wrapf(err, "connecting to %s", name)
	}
	return newBLE(client), nil
}

// Dial connects to the printer at the given MAC address.
func Dial(ctx context.Context, addr string) (*BLE, error) {
	client, err := ble.Dial(ctx, ble.NewAddr(addr))
	if err != nil {
		return nil, errors.Wrapf(err, "connecting to %s", addr)
	}
	return newBLE(client), nil
}

func newBLE(client ble.Client) *BLE {
	b := &BLE{client: client, mtu: defaultMTU}
	mtu, err := client.ExchangeMTU(requestMTU)
	if err != nil {
		log.Printf("MTU exchange failed: %v", err)
	} else {
		b.mtu = mtu
	}
	if verbose {
		log.Printf("connected to %s (%s), ATT MTU %d", client.Name(), client.Addr(), b.mtu)
	}
	return b
}

// Name returns the advertised name of the connected printer.
func (b *BLE) Name() string {
	return b.client.Name()
}

// Address returns the address of the connected printer.
func (b *BLE) Address() string {
	return b.client.Addr().String()
}

// Setup discovers the printer's characteristics and subscribes to notifications.
func (b *BLE) Setup(handler func([]byte)) error {
	services, err := b.client.DiscoverServices([]ble.UUID{serviceUUID})
	if err != nil {
		return errors.Wrap(err, "discovering services")
	}
	if len(services) == 0 {
		return errors.Wrapf(ErrMissingCharacteristic, "service %s not found", serviceUUID)
	}
	chars, err := b.client.DiscoverCharacteristics(nil, services[0])
	if err != nil {
		return errors.Wrap(err, "discovering characteristics")
	}
	b.command, b.notify, b.data = nil, nil, nil
	for _, c := range chars {
		switch {
		case c.UUID.Equal(commandUUID):
			b.command = c
		case c.UUID.Equal(notifyUUID):
			b.notify = c
		case c.UUID.Equal(dataUUID):
			b.data = c
		}
	}
	for _, c := range []struct {
		chr  *ble.Characteristic
		uuid ble.UUID
	}{
		{b.command, commandUUID},
		{b.notify, notifyUUID},
		{b.data, dataUUID},
	} {
		if c.chr == nil {
			return errors.Wrapf(ErrMissingCharacteristic, "%s", c.uuid)
		}
	}
	if _, err := b.client.DiscoverDescriptors(nil, b.notify); err != nil {
		return errors.Wrap(err, "discovering descriptors")
	}
	if err := b.client.Subscribe(b.notify, false, handler); err != nil {
		return errors.Wrap(err, "subscribing to notifications")
	}
	return nil
}

// WriteCommand writes a command frame without response.
func (b *BLE) WriteCommand(p []byte) error {
	if b.command == nil {
		return ErrNotConnected
	}
	return b.write(b.command, p)
}

// WriteData writes a printer line without response.
func (b *BLE) WriteData(p []byte) error {
	if b.data == nil {
		return ErrNotConnected
	}
	return b.write(b.data, p)
}

// write splits p into chunks that fit the negotiated MTU.
func (b *BLE) write(c *ble.Characteristic, p []byte) error {
	n := b.mtu - attHeader
	for len(p) > 0 {
		chunk := p
		if len(chunk) > n {
			chunk = chunk[:n]
		}
		if err := b.client.WriteCharacteristic(c, chunk, true); err != nil {
			return errors.Wrapf(err, "writing %s", c.UUID)
		}
		p = p[len(chunk):]
	}
	return nil
}

// Disconnected returns a channel that is closed when the link drops.
func (b *BLE) Disconnected() <-chan struct{} {
	return b.client.Disconnected()
}

// Close terminates the connection.
func (b *BLE) Close() error {
	return b.client.CancelConnection()
}
