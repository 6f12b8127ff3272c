package mxw01

import (
	"github.com/pkg/errors"
)

// Frame layout: 22 21 <cmd> 00 <len:u16-LE> <payload> <crc8> FF
const (
	frameMagic0     = 0x22
	frameMagic1     = 0x21
	frameTerminator = 0xFF

	frameHeaderSize  = 6
	frameOverhead    = frameHeaderSize + 2
	maxFramePayload  = 0xFFFF
	frameCommandByte = 2
)

// ErrBadFrame is returned by ParseFrame for malformed input.
var ErrBadFrame = errors.New("malformed frame")

// BuildFrame returns the command frame carrying payload.
// The checksum covers the header, length and payload.
func BuildFrame(cmd Command, payload []byte) []byte {
	n := len(payload)
	if n > maxFramePayload {
		panic("payload too long")
	}
	frame := make([]byte, frameOverhead+n)
	frame[0] = frameMagic0
	frame[1] = frameMagic1
	frame[2] = byte(cmd)
	frame[3] = 0
	copy(frame[4:6], marshalUint16(uint16(n)))
	copy(frame[frameHeaderSize:], payload)
	frame[frameHeaderSize+n] = CRC8(frame[:frameHeaderSize+n])
	frame[frameHeaderSize+n+1] = frameTerminator
	return frame
}

// ParseFrame validates a command frame and returns its command and payload.
func ParseFrame(frame []byte) (Command, []byte, error) {
	if len(frame) < frameOverhead {
		return 0, nil, errors.Wrapf(ErrBadFrame, "%d-byte frame too short", len(frame))
	}
	if frame[0] != frameMagic0 || frame[1] != frameMagic1 || frame[3] != 0 {
		return 0, nil, errors.Wrapf(ErrBadFrame, "bad header % X", frame[:4])
	}
	n := int(unmarshalUint16(frame[4:6]))
	if len(frame) != frameOverhead+n {
		return 0, nil, errors.Wrapf(ErrBadFrame, "length field %d does not match %d-byte frame", n, len(frame))
	}
	crc := CRC8(frame[:frameHeaderSize+n])
	if frame[frameHeaderSize+n] != crc {
		return 0, nil, errors.Wrapf(ErrBadFrame, "checksum %02X, want %02X", frame[frameHeaderSize+n], crc)
	}
	if frame[frameHeaderSize+n+1] != frameTerminator {
		return 0, nil, errors.Wrapf(ErrBadFrame, "terminator %02X", frame[frameHeaderSize+n+1])
	}
	payload := make([]byte, n)
	copy(payload, frame[frameHeaderSize:frameHeaderSize+n])
	return Command(frame[frameCommandByte]), payload, nil
}
