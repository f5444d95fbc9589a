package wire

import (
	"encoding/binary"
	"fmt"
)

// Fragmented packets insert four extra 16-bit fields between the packet
// header and the payload: message id, total message length, fragment
// offset, and fragment length. Per spec.md §4.1 the latter three are
// carried on the wire as 32-bit word counts, matching buildFrame's length
// convention; FragmentHeader itself holds them as byte counts for callers.
type FragmentHeader struct {
	MessageID     uint16
	Offset        uint16
	FragmentLen   uint16
	TotalLength   uint16
}

func encodeFragmentHeader(buf []byte, f FragmentHeader) {
	binary.BigEndian.PutUint16(buf[0:2], f.MessageID)
	binary.BigEndian.PutUint16(buf[2:4], uint16(f.TotalLength/4))
	binary.BigEndian.PutUint16(buf[4:6], uint16(f.Offset/4))
	binary.BigEndian.PutUint16(buf[6:8], uint16(f.FragmentLen/4))
}

func decodeFragmentHeader(buf []byte) FragmentHeader {
	return FragmentHeader{
		MessageID:   binary.BigEndian.Uint16(buf[0:2]),
		TotalLength: binary.BigEndian.Uint16(buf[2:4]) * 4,
		Offset:      binary.BigEndian.Uint16(buf[4:6]) * 4,
		FragmentLen: binary.BigEndian.Uint16(buf[6:8]) * 4,
	}
}

// MaxFragmentPayload is the largest chunk of a message body that fits in one
// fragment once packet header, fragment header, and trailing CRC are
// accounted for, bounded by MaxPacketLength.
const MaxFragmentPayload = MaxPacketLength - HeaderLength - FragmentHeaderLength - CRCLength

// BuildFragments splits a fully-built message (the bytes normally carried
// whole after the packet header) into a sequence of fragmented packets, each
// already carrying its packet header, fragment header, and trailing CRC.
// mtu is the full wire packet size ceiling negotiated for the session.
func BuildFragments(messageID uint16, message []byte, header Header, mtu int) ([][]byte, error) {
	if mtu < HeaderLength+FragmentHeaderLength+CRCLength+4 {
		return nil, fmt.Errorf("wire: mtu %d too small to carry any fragment payload", mtu)
	}
	chunk := mtu - HeaderLength - FragmentHeaderLength - CRCLength
	if chunk > MaxFragmentPayload {
		chunk = MaxFragmentPayload
	}
	chunk -= chunk % 4 // offsets and lengths are word counts on the wire
	if chunk <= 0 {
		return nil, fmt.Errorf("wire: mtu %d too small to carry a word-aligned fragment payload", mtu)
	}
	if len(message)%4 != 0 {
		return nil, fmt.Errorf("wire: message is not word-aligned (%d bytes)", len(message))
	}
	if len(message) > 0xffff {
		return nil, fmt.Errorf("wire: message too large to fragment: %d bytes", len(message))
	}

	var fragments [][]byte
	total := uint16(len(message))
	for off := 0; off < len(message); off += chunk {
		end := off + chunk
		if end > len(message) {
			end = len(message)
		}
		payload := message[off:end]

		packet := make([]byte, HeaderLength+FragmentHeaderLength+len(payload))
		header.Fragmented = true
		EncodeHeader(packet[:HeaderLength], header)
		encodeFragmentHeader(packet[HeaderLength:HeaderLength+FragmentHeaderLength], FragmentHeader{
			MessageID:   messageID,
			Offset:      uint16(off),
			FragmentLen: uint16(len(payload)),
			TotalLength: total,
		})
		copy(packet[HeaderLength+FragmentHeaderLength:], payload)
		fragments = append(fragments, AppendCRC(packet))
	}
	return fragments, nil
}

// Reassembler holds the single in-progress fragment assembly for one
// channel. ZRTP channels track at most one partial message at a time: a
// fragment with a higher message id discards whatever was partially
// assembled, and a fragment with a lower message id is rejected as stale.
type Reassembler struct {
	messageID uint16
	total     uint16
	have      int
	buf       []byte
	present   []bool
	active    bool
}

// Add feeds one fragment's payload (the bytes after the fragment header) into
// the reassembler. It returns the complete message body once every fragment
// for the current message id has arrived.
func (r *Reassembler) Add(fh FragmentHeader, payload []byte) ([]byte, error) {
	if int(fh.Offset)+len(payload) > int(fh.TotalLength) {
		return nil, fmt.Errorf("wire: fragment exceeds declared total length")
	}

	if r.active && fh.MessageID < r.messageID {
		return nil, fmt.Errorf("wire: fragment for stale message id %d (current %d)", fh.MessageID, r.messageID)
	}
	if !r.active || fh.MessageID > r.messageID {
		r.messageID = fh.MessageID
		r.total = fh.TotalLength
		r.buf = make([]byte, fh.TotalLength)
		r.present = make([]bool, fh.TotalLength)
		r.have = 0
		r.active = true
	}
	if fh.TotalLength != r.total {
		return nil, fmt.Errorf("wire: fragment total length mismatch: got %d, want %d", fh.TotalLength, r.total)
	}

	for i, b := range payload {
		idx := int(fh.Offset) + i
		if !r.present[idx] {
			r.present[idx] = true
			r.have++
		}
		r.buf[idx] = b
	}

	if r.have == int(r.total) {
		msg := r.buf
		r.active = false
		r.buf = nil
		r.present = nil
		return msg, nil
	}
	return nil, nil
}

// DecodeFragment extracts the fragment header and payload from a fragmented
// packet's post-header bytes (CRC already stripped by the caller).
func DecodeFragment(afterHeader []byte) (FragmentHeader, []byte, error) {
	if len(afterHeader) < FragmentHeaderLength {
		return FragmentHeader{}, nil, fmt.Errorf("wire: fragment header truncated")
	}
	fh := decodeFragmentHeader(afterHeader[:FragmentHeaderLength])
	payload := afterHeader[FragmentHeaderLength:]
	if len(payload) != int(fh.FragmentLen) {
		return FragmentHeader{}, nil, fmt.Errorf("wire: fragment length field %d does not match payload %d bytes", fh.FragmentLen, len(payload))
	}
	return fh, payload, nil
}
