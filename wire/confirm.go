package wire

import (
	"encoding/binary"
	"fmt"

	zcrypto "github.com/lanikai/gozrtp/crypto"
)

// Confirm flag bits within the encrypted block, per spec.md §4.1.
const (
	ConfirmFlagE byte = 1 << 0 // PBX enrollment
	ConfirmFlagV byte = 1 << 1 // SAS verified
	ConfirmFlagA byte = 1 << 2 // allow clear (GoClear)
	ConfirmFlagD byte = 1 << 3 // disclosure
)

// Confirm carries the sender's H0 reveal and session flags, encrypted
// under the negotiated cipher using zrtpkey{i,r} and a fresh CFB IV, with a
// leading confirm-MAC computed over the ciphertext using mackey{i,r}.
type Confirm struct {
	H0              [32]byte
	SignatureLength uint16 // in 32-bit words
	E, V, A, D      bool
	CacheExpiration uint32
	Signature       []byte
}

func (c *Confirm) plaintext() []byte {
	n := 32 + 2 + 1 + 1 + 4 + len(c.Signature)
	buf := make([]byte, n)
	off := 0
	off += copy(buf[off:], c.H0[:])
	binary.BigEndian.PutUint16(buf[off:off+2], c.SignatureLength)
	off += 2
	var flags byte
	if c.E {
		flags |= ConfirmFlagE
	}
	if c.V {
		flags |= ConfirmFlagV
	}
	if c.A {
		flags |= ConfirmFlagA
	}
	if c.D {
		flags |= ConfirmFlagD
	}
	buf[off] = flags
	off++
	off++ // reserved byte
	binary.BigEndian.PutUint32(buf[off:off+4], c.CacheExpiration)
	off += 4
	copy(buf[off:], c.Signature)
	return buf
}

func confirmFromPlaintext(pt []byte) (*Confirm, error) {
	const fixed = 32 + 2 + 1 + 1 + 4
	if len(pt) < fixed {
		return nil, fmt.Errorf("wire: Confirm plaintext too short: %d bytes", len(pt))
	}
	c := &Confirm{}
	off := 0
	off += copy(c.H0[:], pt[off:off+32])
	c.SignatureLength = binary.BigEndian.Uint16(pt[off : off+2])
	off += 2
	flags := pt[off]
	c.E = flags&ConfirmFlagE != 0
	c.V = flags&ConfirmFlagV != 0
	c.A = flags&ConfirmFlagA != 0
	c.D = flags&ConfirmFlagD != 0
	off++
	off++ // reserved
	c.CacheExpiration = binary.BigEndian.Uint32(pt[off : off+4])
	off += 4
	c.Signature = append([]byte(nil), pt[off:]...)
	return c, nil
}

// BuildConfirm encrypts c's plaintext block under cipher/zrtpKey/iv and
// wraps it with a leading confirm-MAC keyed by mackey.
func BuildConfirm(isConfirm1 bool, c *Confirm, cipher zcrypto.BlockCipher, mac zcrypto.MAC, zrtpKey, mackey, iv []byte) ([]byte, error) {
	pt := c.plaintext()
	ct := make([]byte, len(pt))
	if err := cipher.EncryptCFB(ct, pt, zrtpKey, iv); err != nil {
		return nil, fmt.Errorf("wire: Confirm encrypt: %w", err)
	}

	confirmMAC := mac.Sum(mackey, ct)

	fields := make([]byte, 8+len(iv)+len(ct))
	copy(fields[0:8], confirmMAC[:8])
	copy(fields[8:8+len(iv)], iv)
	copy(fields[8+len(iv):], ct)

	t := MsgConfirm2
	if isConfirm1 {
		t = MsgConfirm1
	}
	return buildFrame(t, fields)
}

// ParseConfirm decrypts and validates a Confirm message. ivLen is the
// negotiated cipher's block size.
func ParseConfirm(fields []byte, cipher zcrypto.BlockCipher, mac zcrypto.MAC, zrtpKey, mackey []byte) (*Confirm, error) {
	ivLen := cipher.BlockSize()
	if len(fields) < 8+ivLen {
		return nil, fmt.Errorf("wire: Confirm too short: %d bytes", len(fields))
	}
	var confirmMAC [8]byte
	copy(confirmMAC[:], fields[:8])
	iv := fields[8 : 8+ivLen]
	ct := fields[8+ivLen:]

	want := mac.Sum(mackey, ct)
	for i := 0; i < 8; i++ {
		if want[i] != confirmMAC[i] {
			return nil, fmt.Errorf("wire: Confirm MAC mismatch")
		}
	}

	pt := make([]byte, len(ct))
	if err := cipher.DecryptCFB(pt, ct, zrtpKey, iv); err != nil {
		return nil, fmt.Errorf("wire: Confirm decrypt: %w", err)
	}
	return confirmFromPlaintext(pt)
}
