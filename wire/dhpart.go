package wire

import (
	"fmt"

	zcrypto "github.com/lanikai/gozrtp/crypto"
)

// DHPart carries the sender's H1 reveal, the cached-secret IDs it can
// match against the peer's cache, and its DH/ECDH/KEM public value.
type DHPart struct {
	H1            [32]byte
	RS1ID         [8]byte
	RS2ID         [8]byte
	AuxSecretID   [8]byte
	PBXSecretID   [8]byte
	PublicValue   []byte
}

func BuildDHPart(isDHPart1 bool, d *DHPart, mac zcrypto.MAC, h0 []byte) ([]byte, error) {
	fields := d.marshalFields()
	t := MsgDHPart2
	if isDHPart1 {
		t = MsgDHPart1
	}
	return buildWithMAC(t, fields, mac, h0)
}

func (d *DHPart) marshalFields() []byte {
	n := 32 + 8*4 + len(d.PublicValue)
	buf := make([]byte, n)
	off := 0
	off += copy(buf[off:], d.H1[:])
	off += copy(buf[off:], d.RS1ID[:])
	off += copy(buf[off:], d.RS2ID[:])
	off += copy(buf[off:], d.AuxSecretID[:])
	off += copy(buf[off:], d.PBXSecretID[:])
	copy(buf[off:], d.PublicValue)
	return buf
}

func ParseDHPart(fields []byte) (*DHPart, [8]byte, error) {
	body, macField, err := parseWithMAC(fields)
	if err != nil {
		return nil, macField, err
	}
	const fixed = 32 + 8*4
	if len(body) < fixed {
		return nil, macField, fmt.Errorf("wire: DHPart too short: %d bytes", len(body))
	}
	d := &DHPart{}
	off := 0
	off += copy(d.H1[:], body[off:off+32])
	off += copy(d.RS1ID[:], body[off:off+8])
	off += copy(d.RS2ID[:], body[off:off+8])
	off += copy(d.AuxSecretID[:], body[off:off+8])
	off += copy(d.PBXSecretID[:], body[off:off+8])
	d.PublicValue = append([]byte(nil), body[off:]...)
	return d, macField, nil
}
