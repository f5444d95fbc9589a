package wire

import (
	"fmt"

	zcrypto "github.com/lanikai/gozrtp/crypto"
)

// Commit carries the committing party's chosen algorithms and binds the
// commitment to either a DH exchange (hvi, optionally a KEM public value)
// or a Multi/Preshared nonce.
type Commit struct {
	H2           [32]byte
	ZID          [12]byte
	Hash         Tag
	Cipher       Tag
	AuthTag      Tag
	KeyAgreement Tag
	SAS          Tag

	// DH / EC / KEM form.
	HVI           [32]byte
	KEMPublicValue []byte // only set when KeyAgreement is a KEM-type tag

	// Multi / Preshared form.
	Nonce [16]byte
	KeyID []byte // optional, 8 bytes when present
}

// IsSharedSecretMode reports whether this Commit uses the Multi/Preshared
// (no-DH) form.
func (c *Commit) IsSharedSecretMode() bool {
	return c.KeyAgreement == TagMult || c.KeyAgreement == TagPrsh
}

func BuildCommit(c *Commit, mac zcrypto.MAC, h1 []byte) ([]byte, error) {
	fields, err := c.marshalFields()
	if err != nil {
		return nil, err
	}
	return buildWithMAC(MsgCommit, fields, mac, h1)
}

func (c *Commit) marshalFields() ([]byte, error) {
	var variable []byte
	if c.IsSharedSecretMode() {
		variable = append(variable, c.Nonce[:]...)
		if c.KeyID != nil {
			if len(c.KeyID) != 8 {
				return nil, fmt.Errorf("wire: Commit KeyID must be 8 bytes")
			}
			variable = append(variable, c.KeyID...)
		}
	} else {
		variable = append(variable, c.HVI[:]...)
		variable = append(variable, c.KEMPublicValue...)
	}

	n := 32 + 12 + 4*5 + len(variable)
	buf := make([]byte, n)
	off := 0
	off += copy(buf[off:], c.H2[:])
	off += copy(buf[off:], c.ZID[:])
	off += copy(buf[off:], c.Hash[:])
	off += copy(buf[off:], c.Cipher[:])
	off += copy(buf[off:], c.AuthTag[:])
	off += copy(buf[off:], c.KeyAgreement[:])
	off += copy(buf[off:], c.SAS[:])
	copy(buf[off:], variable)
	return buf, nil
}

func ParseCommit(fields []byte) (*Commit, [8]byte, error) {
	body, macField, err := parseWithMAC(fields)
	if err != nil {
		return nil, macField, err
	}
	const fixed = 32 + 12 + 4*5
	if len(body) < fixed {
		return nil, macField, fmt.Errorf("wire: Commit too short: %d bytes", len(body))
	}
	c := &Commit{}
	off := 0
	off += copy(c.H2[:], body[off:off+32])
	off += copy(c.ZID[:], body[off:off+12])
	off += copy(c.Hash[:], body[off:off+4])
	off += copy(c.Cipher[:], body[off:off+4])
	off += copy(c.AuthTag[:], body[off:off+4])
	off += copy(c.KeyAgreement[:], body[off:off+4])
	off += copy(c.SAS[:], body[off:off+4])

	rest := body[off:]
	if c.IsSharedSecretMode() {
		switch len(rest) {
		case 16:
			copy(c.Nonce[:], rest)
		case 24:
			copy(c.Nonce[:], rest[:16])
			c.KeyID = append([]byte(nil), rest[16:]...)
		default:
			return nil, macField, fmt.Errorf("wire: Commit nonce section has unexpected length %d", len(rest))
		}
	} else {
		if len(rest) < 32 {
			return nil, macField, fmt.Errorf("wire: Commit missing hvi")
		}
		copy(c.HVI[:], rest[:32])
		if len(rest) > 32 {
			c.KEMPublicValue = append([]byte(nil), rest[32:]...)
		}
	}
	return c, macField, nil
}
