package keyschedule

import (
	"encoding/binary"

	zcrypto "github.com/lanikai/gozrtp/crypto"
)

// TotalHash hashes the concatenated bodies of Hello_responder, Commit,
// DHPart1, DHPart2 (or just the first two for multistream) with the
// negotiated hash algorithm, per spec.md §4.7.
func TotalHash(hasher zcrypto.Hasher, helloResponder, commit, dhPart1, dhPart2 []byte) []byte {
	buf := append(append([]byte(nil), helloResponder...), commit...)
	if dhPart1 != nil {
		buf = append(buf, dhPart1...)
	}
	if dhPart2 != nil {
		buf = append(buf, dhPart2...)
	}
	return hasher.Sum(buf)
}

// KDFContext builds KDF_context = ZID_i || ZID_r || total_hash.
func KDFContext(zidInitiator, zidResponder [12]byte, totalHash []byte) []byte {
	buf := make([]byte, 0, 24+len(totalHash))
	buf = append(buf, zidInitiator[:]...)
	buf = append(buf, zidResponder[:]...)
	buf = append(buf, totalHash...)
	return buf
}

// lengthPrefixed appends a 32-bit big-endian byte length followed by the
// bytes themselves; nil/empty secrets contribute a zero length and no bytes.
func lengthPrefixed(buf, secret []byte) []byte {
	var l [4]byte
	binary.BigEndian.PutUint32(l[:], uint32(len(secret)))
	buf = append(buf, l[:]...)
	return append(buf, secret...)
}

// S0FromDH implements spec.md §4.7's DH-mode s0:
//
//	s0 = H(0x00000001 || DHResult || "ZRTP-HMAC-KDF" || KDF_context ||
//	       len(s1)||s1 || len(s2)||s2 || len(s3)||s3)
//
// s1 is rs1 if held, else rs2, else empty. s2 is the auxsecret (optionally
// transient||cached). s3 is the pbxsecret. Absent secrets are passed as nil.
func S0FromDH(hasher zcrypto.Hasher, dhResult, kdfContext, s1, s2, s3 []byte) []byte {
	buf := []byte{0x00, 0x00, 0x00, 0x01}
	buf = append(buf, dhResult...)
	buf = append(buf, "ZRTP-HMAC-KDF"...)
	buf = append(buf, kdfContext...)
	buf = lengthPrefixed(buf, s1)
	buf = lengthPrefixed(buf, s2)
	buf = lengthPrefixed(buf, s3)
	return hasher.Sum(buf)
}

// S0FromMultistream implements spec.md §4.7's multistream-mode s0:
//
//	s0 = KDF(ZRTPSess, "ZRTP MSK", KDF_context, hashLength)
func S0FromMultistream(mac zcrypto.MAC, zrtpSess, kdfContext []byte, hashLengthBytes int) []byte {
	return KDF(mac, zrtpSess, "ZRTP MSK", kdfContext, hashLengthBytes*8)
}

// S0FromPreshared implements preshared-mode s0: the keyed retained secret
// takes the place of ZRTPSess since no prior DH-mode channel exists to
// derive it from.
//
//	s0 = KDF(preshared_key, "ZRTP PSK", KDF_context, hashLength)
func S0FromPreshared(mac zcrypto.MAC, presharedKey, kdfContext []byte, hashLengthBytes int) []byte {
	return KDF(mac, presharedKey, "ZRTP PSK", kdfContext, hashLengthBytes*8)
}

// DerivedKeys holds every key derived from s0 for one channel.
type DerivedKeys struct {
	MacKeyInitiator  []byte
	MacKeyResponder  []byte
	ZRTPKeyInitiator []byte
	ZRTPKeyResponder []byte
}

// DeriveChannelKeys computes mackey{i,r} and zrtpkey{i,r} from s0, per
// spec.md §4.7. zrtpKeyLengthBytes is the negotiated cipher's key length.
func DeriveChannelKeys(mac zcrypto.MAC, s0, kdfContext []byte, hashLengthBytes, zrtpKeyLengthBytes int) DerivedKeys {
	return DerivedKeys{
		MacKeyInitiator:  KDF(mac, s0, "Initiator HMAC key", kdfContext, hashLengthBytes*8),
		MacKeyResponder:  KDF(mac, s0, "Responder HMAC key", kdfContext, hashLengthBytes*8),
		ZRTPKeyInitiator: KDF(mac, s0, "Initiator ZRTP key", kdfContext, zrtpKeyLengthBytes*8),
		ZRTPKeyResponder: KDF(mac, s0, "Responder ZRTP key", kdfContext, zrtpKeyLengthBytes*8),
	}
}

// DeriveZRTPSess computes the per-session master key on the first DH-mode
// channel, used to key subsequent multistream channels.
func DeriveZRTPSess(mac zcrypto.MAC, s0, kdfContext []byte, hashLengthBytes int) []byte {
	return KDF(mac, s0, "ZRTP Session Key", kdfContext, hashLengthBytes*8)
}

// DeriveRetainedSecret computes new_rs1 on reaching secure, per spec.md
// §4.6: new_rs1 = KDF(s0, "retained secret", KDF-context, 256).
func DeriveRetainedSecret(mac zcrypto.MAC, s0, kdfContext []byte) []byte {
	return KDF(mac, s0, "retained secret", kdfContext, 256)
}

// ExportedKey implements the RFC 6189 optional exported-key derivation:
// KDF(s0, "Exported key", KDF_context, hashLength).
func ExportedKey(mac zcrypto.MAC, s0, kdfContext []byte, hashLengthBytes int) []byte {
	return KDF(mac, s0, "Exported key", kdfContext, hashLengthBytes*8)
}

// SRTPSecrets holds the keying material handed to the host for starting an
// SRTP session. Keys are sized by the negotiated cipher's key length; salts
// are always 14 bytes.
type SRTPSecrets struct {
	KeyInitiator,  KeyResponder  []byte
	SaltInitiator, SaltResponder []byte
}

const srtpSaltLengthBytes = 14

// DeriveSRTPSecrets computes the SRTP master keys and salts from s0.
func DeriveSRTPSecrets(mac zcrypto.MAC, s0, kdfContext []byte, cipherKeyLengthBytes int) SRTPSecrets {
	return SRTPSecrets{
		KeyInitiator:   KDF(mac, s0, "Initiator SRTP master key", kdfContext, cipherKeyLengthBytes*8),
		KeyResponder:   KDF(mac, s0, "Responder SRTP master key", kdfContext, cipherKeyLengthBytes*8),
		SaltInitiator:  KDF(mac, s0, "Initiator SRTP master salt", kdfContext, srtpSaltLengthBytes*8),
		SaltResponder:  KDF(mac, s0, "Responder SRTP master salt", kdfContext, srtpSaltLengthBytes*8),
	}
}
