// Package wire implements the ZRTP packet codec: the 12-byte packet header,
// message preamble/length, trailing CRC32, fragmentation/reassembly, and
// typed message bodies. Field ordering and endianness follow spec.md §4.1
// and §6 bit-exactly: all multi-byte integers are big-endian.
package wire

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

// Preamble bytes that begin every ZRTP packet header.
const (
	PreambleNormal     byte = 0x10
	PreambleFragmented byte = 0x11
)

// MagicCookie is the fixed 32-bit value identifying a ZRTP packet (as
// opposed to an RTP/RTCP/STUN packet sharing the same UDP flow).
const MagicCookie uint32 = 0x5a525450

// MessagePreamble begins every ZRTP message body.
const MessagePreamble uint16 = 0x505a

// HeaderLength is the fixed 12-byte packet header size.
const HeaderLength = 12

// FragmentHeaderLength is the size of the four extra 16-bit fields present
// in a fragmented packet, inserted between the packet header and the
// fragment payload.
const FragmentHeaderLength = 8

// MinPacketLength and MaxPacketLength bound a legal ZRTP packet, per
// spec.md §4.1.
const (
	MinPacketLength = 28
	MaxPacketLength = 3072
)

// CRCLength is the size of the trailing CRC32 field.
const CRCLength = 4

// Header is the fixed 12-byte packet header common to every ZRTP packet.
type Header struct {
	Fragmented     bool
	SequenceNumber uint16
	SSRC           uint32
}

// EncodeHeader writes the 12-byte header into buf (which must be at least
// HeaderLength bytes).
func EncodeHeader(buf []byte, h Header) {
	if h.Fragmented {
		buf[0] = PreambleFragmented
	} else {
		buf[0] = PreambleNormal
	}
	buf[1] = 0
	binary.BigEndian.PutUint16(buf[2:4], h.SequenceNumber)
	binary.BigEndian.PutUint32(buf[4:8], MagicCookie)
	binary.BigEndian.PutUint32(buf[8:12], h.SSRC)
}

// DecodeHeader parses the 12-byte header from buf.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderLength {
		return Header{}, fmt.Errorf("wire: packet too short for header: %d bytes", len(buf))
	}
	preamble := buf[0]
	var fragmented bool
	switch preamble {
	case PreambleNormal:
		fragmented = false
	case PreambleFragmented:
		fragmented = true
	default:
		return Header{}, fmt.Errorf("wire: bad preamble byte 0x%02x", preamble)
	}
	if got := binary.BigEndian.Uint32(buf[4:8]); got != MagicCookie {
		return Header{}, fmt.Errorf("wire: bad magic cookie 0x%08x", got)
	}
	return Header{
		Fragmented:     fragmented,
		SequenceNumber: binary.BigEndian.Uint16(buf[2:4]),
		SSRC:           binary.BigEndian.Uint32(buf[8:12]),
	}, nil
}

// ComputeCRC returns the IEEE CRC32 of the packet excluding the trailing
// 4-byte CRC field itself.
func ComputeCRC(packet []byte) uint32 {
	return crc32.ChecksumIEEE(packet[:len(packet)-CRCLength])
}

// AppendCRC appends the trailing CRC to a fully built packet (header +
// message), returning the complete wire packet.
func AppendCRC(packet []byte) []byte {
	out := make([]byte, len(packet)+CRCLength)
	copy(out, packet)
	crc := crc32.ChecksumIEEE(packet)
	binary.BigEndian.PutUint32(out[len(packet):], crc)
	return out
}

// VerifyCRC checks the trailing CRC field against the rest of the packet.
func VerifyCRC(packet []byte) bool {
	if len(packet) < CRCLength {
		return false
	}
	want := binary.BigEndian.Uint32(packet[len(packet)-CRCLength:])
	return ComputeCRC(packet) == want
}

// SetSequenceNumber rewrites the sequence-number field of an already-built
// packet and recomputes the trailing CRC, without touching the message
// body. This is the only mutation performed on a (re)transmitted packet:
// the MAC-committed message bytes must never change between retransmits.
func SetSequenceNumber(packet []byte, n uint16) error {
	if len(packet) < HeaderLength+CRCLength {
		return fmt.Errorf("wire: packet too short to carry a sequence number")
	}
	binary.BigEndian.PutUint16(packet[2:4], n)
	crc := ComputeCRC(packet)
	binary.BigEndian.PutUint32(packet[len(packet)-CRCLength:], crc)
	return nil
}
