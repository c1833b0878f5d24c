// Package frame owns the LWP common message header codec.
//
// Wire layout: [length][hub id][message type][payload...]. The length
// field counts the whole message including itself; totals above 127 use
// the two-byte extended encoding (low 7 bits with the high bit set,
// then the remaining bits).
package frame

import (
	"errors"

	"github.com/programmingLego/lwpctl/internal/lwp"
)

// HubID is the only hub id defined by the protocol revision in use.
const HubID byte = 0x00

// MaxMessageLen bounds the two-byte extended length encoding.
const MaxMessageLen = 1<<14 - 1

var (
	ErrShortMessage   = errors.New("frame: short message")
	ErrLengthMismatch = errors.New("frame: length mismatch")
	ErrTooLarge       = errors.New("frame: message too large")
)

// Message is one complete decoded wire message.
type Message struct {
	HubID   byte
	Type    lwp.MessageType
	Payload []byte
}

// Encode assembles a complete message for msgType around payload.
func Encode(msgType lwp.MessageType, payload []byte) ([]byte, error) {
	total := len(payload) + 3
	if total <= 127 {
		buf := make([]byte, 0, total)
		buf = append(buf, byte(total), HubID, byte(msgType))
		return append(buf, payload...), nil
	}
	total++ // second length byte
	if total > MaxMessageLen {
		return nil, ErrTooLarge
	}
	buf := make([]byte, 0, total)
	buf = append(buf, byte(total&0x7f)|0x80, byte(total>>7), HubID, byte(msgType))
	return append(buf, payload...), nil
}

// Decode parses a complete message, validating length and message type.
// An undefined message type surfaces as lwp.UnknownCodeError.
func Decode(data []byte) (Message, error) {
	if len(data) < 3 {
		return Message{}, ErrShortMessage
	}
	total := int(data[0])
	headerLen := 3
	if data[0]&0x80 != 0 {
		total = int(data[0]&0x7f) | int(data[1])<<7
		headerLen = 4
		if len(data) < headerLen {
			return Message{}, ErrShortMessage
		}
	}
	if total != len(data) {
		return Message{}, ErrLengthMismatch
	}
	msgType, err := lwp.MessageTypeOf(data[headerLen-1])
	if err != nil {
		return Message{}, err
	}
	payload := make([]byte, len(data)-headerLen)
	copy(payload, data[headerLen:])
	return Message{
		HubID:   data[headerLen-2],
		Type:    msgType,
		Payload: payload,
	}, nil
}
