package mxw01

import (
	"github.com/pkg/errors"
)

// Transport is the link to the printer's three GATT channels.
type Transport interface {
	// Setup resolves the command, notify and data channels and
	// starts delivering notifications to handler.
	Setup(handler func([]byte)) error

	// WriteCommand writes a frame to the command channel
	// without waiting for a link-layer acknowledgment.
	WriteCommand(p []byte) error

	// WriteData writes one printer line to the bulk-data channel
	// without waiting for a link-layer acknowledgment.
	WriteData(p []byte) error

	// Disconnected is closed when the link drops.
	Disconnected() <-chan struct{}

	Close() error
}

var (
	// ErrNoResponse is returned when the printer does not answer
	// a command within the printer's timeout.
	ErrNoResponse = errors.New("no response from printer")

	// ErrDisconnected is returned for a command whose response was
	// still pending when the link dropped.
	ErrDisconnected = errors.New("printer disconnected")

	// ErrNotConnected is returned when no transport is available.
	ErrNotConnected = errors.New("printer not connected")

	// ErrMissingCharacteristic is returned when the printer does not
	// offer one of the required GATT characteristics.
	ErrMissingCharacteristic = errors.New("missing characteristic")
)
