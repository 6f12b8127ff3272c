//go:build linux
// +build linux

package mxw01

import (
	"github.com/go-ble/ble"
	"github.com/go-ble/ble/linux"
	"github.com/pkg/errors"
)

// OpenDevice opens the HCI adapter with the given index
// and makes it the default for Connect and Dial.
func OpenDevice(id int) (ble.Device, error) {
	d, err := linux.NewDevice(ble.OptDeviceID(id))
	if err != nil {
		return nil, errors.Wrapf(err, "opening hci%d", id)
	}
	ble.SetDefaultDevice(d)
	return d, nil
}
