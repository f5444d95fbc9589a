package wire

import (
	"encoding/binary"
	"fmt"

	zcrypto "github.com/lanikai/gozrtp/crypto"
)

// frameOverhead is the size in bytes of the message preamble, length, and
// type fields that precede every message's fields.
const frameOverhead = 2 + 2 + 8

// buildFrame lays out preamble + length + type + fields into a single
// buffer, with length expressed as a word count per spec.md §4.1.
func buildFrame(t MessageType, fields []byte) ([]byte, error) {
	total := frameOverhead + len(fields)
	if total%4 != 0 {
		return nil, fmt.Errorf("wire: message %s is not word-aligned (%d bytes)", t, total)
	}
	buf := make([]byte, total)
	binary.BigEndian.PutUint16(buf[0:2], MessagePreamble)
	binary.BigEndian.PutUint16(buf[2:4], uint16(total/4))
	copy(buf[4:12], t[:])
	copy(buf[12:], fields)
	return buf, nil
}

// ParseFrame validates the preamble/length/type and returns the message
// type and its own field bytes (preamble/length/type stripped).
func ParseFrame(data []byte) (MessageType, []byte, error) {
	return parseFrame(data)
}

// parseFrame validates the preamble/length/type and returns the message's
// own field bytes (preamble/length/type stripped).
func parseFrame(data []byte) (MessageType, []byte, error) {
	if len(data) < frameOverhead {
		return MessageType{}, nil, fmt.Errorf("wire: message too short: %d bytes", len(data))
	}
	preamble := binary.BigEndian.Uint16(data[0:2])
	if preamble != MessagePreamble {
		return MessageType{}, nil, fmt.Errorf("wire: bad message preamble 0x%04x", preamble)
	}
	length := binary.BigEndian.Uint16(data[2:4])
	if int(length)*4 != len(data) {
		return MessageType{}, nil, fmt.Errorf("wire: message length field (%d words) does not match %d bytes", length, len(data))
	}
	var t MessageType
	copy(t[:], data[4:12])
	return t, data[12:], nil
}

// buildWithMAC builds a full message (frame + fields + trailing 8-byte MAC),
// where the MAC is computed over every byte up to (not including) the MAC
// field itself, keyed by the H-image revealed one protocol step later.
func buildWithMAC(t MessageType, fields []byte, mac zcrypto.MAC, macKey []byte) ([]byte, error) {
	frame, err := buildFrame(t, append(fields, make([]byte, 8)...))
	if err != nil {
		return nil, err
	}
	content := frame[:len(frame)-8]
	sum := mac.Sum(macKey, content)
	copy(frame[len(frame)-8:], sum[:8])
	return frame, nil
}

// parseWithMAC strips the trailing 8-byte MAC off an already frame-parsed
// message, returning the remaining fields and the MAC field for the caller
// to verify once the keying H-image is known.
func parseWithMAC(fields []byte) (body []byte, macField [8]byte, err error) {
	if len(fields) < 8 {
		return nil, macField, fmt.Errorf("wire: message too short to carry a MAC")
	}
	body = fields[:len(fields)-8]
	copy(macField[:], fields[len(fields)-8:])
	return body, macField, nil
}

// VerifyMAC rebuilds the frame for a stored, frame-stripped message (t and
// fields as ParseFrame returned them) and recomputes its trailing MAC,
// keyed by the H-image the peer revealed one protocol step later.
func VerifyMAC(t MessageType, fields []byte, mac zcrypto.MAC, macKey []byte) bool {
	frame, err := buildFrame(t, fields)
	if err != nil || len(frame) < 8 {
		return false
	}
	content := frame[:len(frame)-8]
	want := frame[len(frame)-8:]
	got := mac.Sum(macKey, content)
	if len(got) < 8 {
		return false
	}
	for i := 0; i < 8; i++ {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
