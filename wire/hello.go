package wire

import (
	"fmt"

	zcrypto "github.com/lanikai/gozrtp/crypto"
)

const (
	helloFlagSigned byte = 1 << 0
	helloFlagMITM   byte = 1 << 1
	helloFlagPassive byte = 1 << 2
)

// maxAlgosPerCategory is the wire-format clamp on how many algorithms may
// be advertised per category in Hello.
const maxAlgosPerCategory = 7

// Hello is the first message exchanged on a channel: it carries the
// endpoint's identity, hash-chain commitment, and algorithm menus.
type Hello struct {
	Version      [4]byte
	ClientID     [16]byte
	H3           [32]byte
	ZID          [12]byte
	Signed       bool
	MITM         bool
	Passive      bool
	Hash         []Tag
	Cipher       []Tag
	AuthTag      []Tag
	KeyAgreement []Tag
	SAS          []Tag
}

// BuildHello serializes h and appends its trailing MAC (keyed by H2, per
// spec.md §4.2).
func BuildHello(h *Hello, mac zcrypto.MAC, h2 []byte) ([]byte, error) {
	fields, err := h.marshalFields()
	if err != nil {
		return nil, err
	}
	return buildWithMAC(MsgHello, fields, mac, h2)
}

func (h *Hello) marshalFields() ([]byte, error) {
	for _, cat := range [][]Tag{h.Hash, h.Cipher, h.AuthTag, h.KeyAgreement, h.SAS} {
		if len(cat) > maxAlgosPerCategory {
			return nil, fmt.Errorf("wire: Hello category has %d entries, max %d", len(cat), maxAlgosPerCategory)
		}
	}

	n := 4 + 16 + 32 + 12 + 1 + 5 + 2 // version, clientID, H3, ZID, flags, counts, 2 zero bytes for word alignment
	for _, cat := range [][]Tag{h.Hash, h.Cipher, h.AuthTag, h.KeyAgreement, h.SAS} {
		n += 4 * len(cat)
	}
	buf := make([]byte, n)
	off := 0
	off += copy(buf[off:], h.Version[:])
	off += copy(buf[off:], h.ClientID[:])
	off += copy(buf[off:], h.H3[:])
	off += copy(buf[off:], h.ZID[:])

	var flags byte
	if h.Signed {
		flags |= helloFlagSigned
	}
	if h.MITM {
		flags |= helloFlagMITM
	}
	if h.Passive {
		flags |= helloFlagPassive
	}
	buf[off] = flags
	off++

	buf[off] = byte(len(h.Hash))
	buf[off+1] = byte(len(h.Cipher))
	buf[off+2] = byte(len(h.AuthTag))
	buf[off+3] = byte(len(h.KeyAgreement))
	buf[off+4] = byte(len(h.SAS))
	off += 5 + 2 // counts, then the two zero alignment bytes

	for _, cat := range [][]Tag{h.Hash, h.Cipher, h.AuthTag, h.KeyAgreement, h.SAS} {
		for _, tag := range cat {
			off += copy(buf[off:], tag[:])
		}
	}
	return buf, nil
}

// ParseHello parses a Hello message's fields (MAC not yet verified; callers
// verify once H2 is revealed in Commit).
func ParseHello(fields []byte) (*Hello, [8]byte, error) {
	body, macField, err := parseWithMAC(fields)
	if err != nil {
		return nil, macField, err
	}
	const fixed = 4 + 16 + 32 + 12 + 1 + 5 + 2
	if len(body) < fixed {
		return nil, macField, fmt.Errorf("wire: Hello too short: %d bytes", len(body))
	}
	h := &Hello{}
	off := 0
	off += copy(h.Version[:], body[off:off+4])
	off += copy(h.ClientID[:], body[off:off+16])
	off += copy(h.H3[:], body[off:off+32])
	off += copy(h.ZID[:], body[off:off+12])

	flags := body[off]
	h.Signed = flags&helloFlagSigned != 0
	h.MITM = flags&helloFlagMITM != 0
	h.Passive = flags&helloFlagPassive != 0
	off++

	hc, cc, ac, kc, sc := body[off], body[off+1], body[off+2], body[off+3], body[off+4]
	off += 5 + 2 // counts, then the two alignment bytes

	counts := []byte{hc, cc, ac, kc, sc}
	dests := [][]Tag{nil, nil, nil, nil, nil}
	for i, count := range counts {
		if count > maxAlgosPerCategory {
			return nil, macField, fmt.Errorf("wire: Hello category %d count %d exceeds max", i, count)
		}
		need := int(count) * 4
		if off+need > len(body) {
			return nil, macField, fmt.Errorf("wire: Hello truncated in algorithm list")
		}
		tags := make([]Tag, count)
		for j := range tags {
			copy(tags[j][:], body[off:off+4])
			off += 4
		}
		dests[i] = tags
	}
	h.Hash, h.Cipher, h.AuthTag, h.KeyAgreement, h.SAS = dests[0], dests[1], dests[2], dests[3], dests[4]

	if off != len(body) {
		return nil, macField, fmt.Errorf("wire: Hello has %d trailing bytes", len(body)-off)
	}
	return h, macField, nil
}
