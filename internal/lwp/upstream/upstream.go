// Package upstream owns decoding of hub-originated LWP notifications.
//
// Parse dispatches on the message type carried in the common header and
// returns one of the typed notification structs declared here. Callers
// switch on the concrete type.
package upstream

import (
	"errors"
	"fmt"
	"math"

	"github.com/programmingLego/lwpctl/internal/lwp"
	"github.com/programmingLego/lwpctl/internal/lwp/frame"
)

var (
	ErrShortPayload = errors.New("upstream: payload shorter than message type requires")
	ErrUnhandled    = errors.New("upstream: no decoder for message type")
)

// Notification is any decoded hub-originated message.
type Notification interface {
	Port() lwp.Port
}

// Feedback is the port command feedback bitfield.
type Feedback byte

const (
	FeedbackEmptyInProgress Feedback = 0x01
	FeedbackEmptyCompleted  Feedback = 0x02
	FeedbackDiscarded       Feedback = 0x04
	FeedbackIdle            Feedback = 0x08
	FeedbackBusy            Feedback = 0x10
)

func (f Feedback) InProgress() bool { return f&FeedbackEmptyInProgress != 0 }
func (f Feedback) Completed() bool  { return f&FeedbackEmptyCompleted != 0 }
func (f Feedback) Discarded() bool  { return f&FeedbackDiscarded != 0 }
func (f Feedback) Idle() bool       { return f&FeedbackIdle != 0 }
func (f Feedback) Busy() bool       { return f&FeedbackBusy != 0 }

// String reports the most significant state when several bits are set.
func (f Feedback) String() string {
	switch {
	case f.Idle():
		return "IDLE"
	case f.Discarded():
		return "CURRENT_CMD_DISCARDED"
	case f.Completed():
		return "EMPTY_BUF_CMD_COMPLETED"
	case f.InProgress():
		return "EMPTY_BUF_CMD_IN_PROGRESS"
	case f.Busy():
		return "BUSY"
	}
	return fmt.Sprintf("FEEDBACK(0x%02x)", byte(f))
}

// HubActionNotification reports a hub action carried out or announced.
type HubActionNotification struct {
	Action lwp.HubAction
}

func (HubActionNotification) Port() lwp.Port { return 0xff }

// HubAlertNotification is the upstream answer to an alert subscription
// or poll. Status is non-zero while the alert condition holds.
type HubAlertNotification struct {
	Alert  lwp.HubAlertType
	Op     lwp.HubAlertOperation
	Status byte
}

func (HubAlertNotification) Port() lwp.Port { return 0xff }

func (n HubAlertNotification) Raised() bool { return n.Status != 0 }

// HubAttachedIO reports a device attached to or detached from a port.
// For virtual ports PortA and PortB name the physical pair.
type HubAttachedIO struct {
	IOPort lwp.Port
	Event  lwp.PeripheralEvent
	Device lwp.DeviceType
	PortA  lwp.Port
	PortB  lwp.Port
}

func (n HubAttachedIO) Port() lwp.Port { return n.IOPort }

// GenericError reports a command the hub refused or failed to run.
type GenericError struct {
	Command lwp.MessageType
	Code    lwp.ReturnCode
}

func (GenericError) Port() lwp.Port { return 0xff }

func (n GenericError) Error() string {
	return fmt.Sprintf("hub error for %s: %s", n.Command, n.Code)
}

// PortValue is a single port value update. Raw holds the little-endian
// signed reading at whatever width the device sends.
type PortValue struct {
	IOPort lwp.Port
	Raw    int32
}

func (n PortValue) Port() lwp.Port { return n.IOPort }

// Degrees reports the raw encoder reading, which motors with tacho
// deliver in degrees.
func (n PortValue) Degrees() int32 { return n.Raw }

func (n PortValue) Radians() float64 { return float64(n.Raw) * math.Pi / 180 }

// Effective scales the reading by a gear ratio, 1.0 meaning direct drive.
func (n PortValue) Effective(gearRatio float64) float64 {
	return float64(n.Raw) * gearRatio
}

// PortNotification acknowledges a notification setup for a port.
type PortNotification struct {
	IOPort        lwp.Port
	Mode          byte
	DeltaInterval uint32
	Enabled       bool
}

func (n PortNotification) Port() lwp.Port { return n.IOPort }

// PortCmdFeedback reports execution state for up to three ports.
type PortCmdFeedback struct {
	Ports    []lwp.Port
	Feedback []Feedback
}

func (n PortCmdFeedback) Port() lwp.Port {
	if len(n.Ports) == 0 {
		return 0xff
	}
	return n.Ports[0]
}

// For returns the feedback for one of the reported ports.
func (n PortCmdFeedback) For(p lwp.Port) (Feedback, bool) {
	for i, port := range n.Ports {
		if port == p {
			return n.Feedback[i], true
		}
	}
	return 0, false
}

// ExternalServerNotification reports bridge server connection changes.
type ExternalServerNotification struct {
	IOPort lwp.Port
	Event  lwp.PeripheralEvent
}

func (n ExternalServerNotification) Port() lwp.Port { return n.IOPort }

// Parse decodes one complete hub-originated message.
func Parse(data []byte) (Notification, error) {
	msg, err := frame.Decode(data)
	if err != nil {
		return nil, err
	}
	p := msg.Payload
	switch msg.Type {
	case lwp.MsgHubAction:
		if len(p) < 1 {
			return nil, ErrShortPayload
		}
		return HubActionNotification{Action: lwp.HubAction(p[0])}, nil

	case lwp.MsgHubAlert:
		if len(p) < 3 {
			return nil, ErrShortPayload
		}
		return HubAlertNotification{
			Alert:  lwp.HubAlertType(p[0]),
			Op:     lwp.HubAlertOperation(p[1]),
			Status: p[2],
		}, nil

	case lwp.MsgHubAttachedIO:
		return parseAttachedIO(p)

	case lwp.MsgHubGenericError:
		if len(p) < 2 {
			return nil, ErrShortPayload
		}
		return GenericError{
			Command: lwp.MessageType(p[0]),
			Code:    lwp.ReturnCode(p[1]),
		}, nil

	case lwp.MsgPortValue:
		if len(p) < 2 {
			return nil, ErrShortPayload
		}
		raw, err := signedLE(p[1:])
		if err != nil {
			return nil, err
		}
		return PortValue{IOPort: lwp.Port(p[0]), Raw: raw}, nil

	case lwp.MsgPortNotification:
		if len(p) < 7 {
			return nil, ErrShortPayload
		}
		return PortNotification{
			IOPort:        lwp.Port(p[0]),
			Mode:          p[1],
			DeltaInterval: uint32(p[2]) | uint32(p[3])<<8 | uint32(p[4])<<16 | uint32(p[5])<<24,
			Enabled:       p[6] == byte(lwp.StatusEnabled),
		}, nil

	case lwp.MsgPortCommandFeedback:
		return parseFeedback(p)

	case lwp.MsgExternalServerCmd:
		if len(p) < 2 {
			return nil, ErrShortPayload
		}
		return ExternalServerNotification{
			IOPort: lwp.Port(p[0]),
			Event:  lwp.PeripheralEvent(p[1]),
		}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnhandled, msg.Type)
}

func parseAttachedIO(p []byte) (Notification, error) {
	if len(p) < 2 {
		return nil, ErrShortPayload
	}
	n := HubAttachedIO{
		IOPort: lwp.Port(p[0]),
		Event:  lwp.PeripheralEvent(p[1]),
		PortA:  0xff,
		PortB:  0xff,
	}
	switch n.Event {
	case lwp.EventIODetached:
		return n, nil
	case lwp.EventIOAttached:
		if len(p) < 4 {
			return nil, ErrShortPayload
		}
		dev, err := lwp.DeviceTypeOf(p[2])
		if err != nil {
			return nil, err
		}
		n.Device = dev
		return n, nil
	case lwp.EventVirtualIOAttached:
		if len(p) < 6 {
			return nil, ErrShortPayload
		}
		dev, err := lwp.DeviceTypeOf(p[2])
		if err != nil {
			return nil, err
		}
		n.Device = dev
		n.PortA = lwp.Port(p[4])
		n.PortB = lwp.Port(p[5])
		return n, nil
	}
	return nil, fmt.Errorf("%w: attached io event 0x%02x", ErrUnhandled, byte(n.Event))
}

func parseFeedback(p []byte) (Notification, error) {
	if len(p) < 2 || len(p)%2 != 0 {
		return nil, ErrShortPayload
	}
	n := PortCmdFeedback{}
	for i := 0; i+1 < len(p); i += 2 {
		n.Ports = append(n.Ports, lwp.Port(p[i]))
		n.Feedback = append(n.Feedback, Feedback(p[i+1]))
	}
	return n, nil
}

// signedLE decodes a little-endian two's-complement value of 1, 2 or 4
// bytes, the widths devices report values in.
func signedLE(b []byte) (int32, error) {
	switch len(b) {
	case 1:
		return int32(int8(b[0])), nil
	case 2:
		return int32(int16(uint16(b[0]) | uint16(b[1])<<8)), nil
	case 4:
		return int32(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24), nil
	}
	return 0, fmt.Errorf("upstream: port value width %d not supported", len(b))
}
