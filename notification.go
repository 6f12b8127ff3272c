package mxw01

import "fmt"

// Notification is a decoded message from the notify channel.
// Which fields are meaningful depends on Command; Raw always
// holds the undecoded bytes.
type Notification struct {
	Command      Command
	BatteryLevel int
	Temperature  int
	State        byte
	Status       byte
	StatusDetail byte
	Version      string
	PrinterType  byte
	Count        []byte
	Success      bool
	Raw          []byte

	// Decoded is false when the payload was too short or the
	// command is not one with known field offsets.
	Decoded bool
}

// Offset of the command identifier in every notification.
const notifyCommandByte = 2

// ParseNotification decodes the fields of a notification for cmd.
// Payloads that are too short for their command are returned raw.
func ParseNotification(cmd Command, data []byte) Notification {
	n := Notification{Command: cmd, Raw: data}
	switch cmd {
	case CmdGetStatus:
		if len(data) < 14 {
			break
		}
		n.State = data[6]
		n.BatteryLevel = int(data[9])
		n.Temperature = int(data[10])
		n.Status = data[12]
		n.StatusDetail = data[13]
		n.Decoded = true
	case CmdBatteryLevel:
		if len(data) < 7 {
			break
		}
		n.BatteryLevel = int(data[6])
		n.Decoded = true
	case CmdGetVersion:
		if len(data) < 15 {
			break
		}
		n.Version = string(data[6:14])
		n.PrinterType = data[14]
		n.Decoded = true
	case CmdPrintComplete, CmdPrint:
		if len(data) < 7 {
			break
		}
		n.Success = data[6] == 0
		n.Decoded = true
	case CmdGetPrintType:
		if len(data) < 7 {
			break
		}
		n.PrinterType = data[6]
		n.Decoded = true
	case CmdQueryCount:
		if len(data) < 12 {
			break
		}
		n.Count = append([]byte(nil), data[6:12]...)
		n.Decoded = true
	}
	return n
}

// DecodeNotification decodes a raw notification, taking the
// command identifier from the payload itself.
func DecodeNotification(data []byte) Notification {
	if len(data) <= notifyCommandByte {
		return Notification{Raw: data}
	}
	return ParseNotification(Command(data[notifyCommandByte]), data)
}

// StatusText describes a GetStatus notification.
func (n Notification) StatusText() string {
	if n.Status == 0 {
		switch n.State {
		case 0x0:
			return "Standby"
		case 0x1:
			return "Printing"
		case 0x2:
			return "Feeding paper"
		case 0x3:
			return "Ejecting paper"
		}
		return "Unknown"
	}
	switch n.StatusDetail {
	case 0x1, 0x9:
		return "No paper"
	case 0x4:
		return "Overheated"
	case 0x8:
		return "Low battery"
	}
	return "Unknown"
}

// PrinterTypeText describes the print head type reported by
// GetPrintType or GetVersion.
func (n Notification) PrinterTypeText() string {
	switch n.Command {
	case CmdGetVersion:
		switch n.PrinterType {
		case 0x32:
			return "High pressure"
		case 0x31:
			return "Low pressure"
		}
	case CmdGetPrintType:
		switch n.PrinterType {
		case 0x01:
			return "High pressure"
		case 0xFF:
			return "Unknown"
		default:
			return "Low pressure"
		}
	}
	return "Unknown"
}

func (n Notification) String() string {
	if !n.Decoded {
		return fmt.Sprintf("%v % X", n.Command, n.Raw)
	}
	switch n.Command {
	case CmdGetStatus:
		return fmt.Sprintf("%v: %s, battery %d%%, %d°C", n.Command, n.StatusText(), n.BatteryLevel, n.Temperature)
	case CmdBatteryLevel:
		return fmt.Sprintf("%v: %d%%", n.Command, n.BatteryLevel)
	case CmdGetVersion:
		return fmt.Sprintf("%v: %s (%s)", n.Command, n.Version, n.PrinterTypeText())
	case CmdGetPrintType:
		return fmt.Sprintf("%v: %s", n.Command, n.PrinterTypeText())
	case CmdQueryCount:
		return fmt.Sprintf("%v: % X", n.Command, n.Count)
	default:
		return fmt.Sprintf("%v: success=%v", n.Command, n.Success)
	}
}
