package keyschedule

import (
	"encoding/binary"

	zcrypto "github.com/lanikai/gozrtp/crypto"
)

// KDF implements the HMAC-based construction of spec.md §4.7:
//
//	KDF(key, label, context, L) = HMAC(key, 0x00000001 || label || 0x00 || context || L_be32)
//
// L is the requested output length in bits; the HMAC output is truncated to
// L/8 bytes.
func KDF(mac zcrypto.MAC, key []byte, label string, context []byte, lBits int) []byte {
	buf := make([]byte, 0, 4+len(label)+1+len(context)+4)
	buf = append(buf, 0x00, 0x00, 0x00, 0x01)
	buf = append(buf, label...)
	buf = append(buf, 0x00)
	buf = append(buf, context...)

	var lBuf [4]byte
	binary.BigEndian.PutUint32(lBuf[:], uint32(lBits))
	buf = append(buf, lBuf[:]...)

	sum := mac.Sum(key, buf)
	n := lBits / 8
	if n > len(sum) {
		n = len(sum)
	}
	return sum[:n]
}
