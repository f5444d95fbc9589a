// Package crypto defines the narrow interfaces the ZRTP engine uses for
// hashing, MACing, block ciphers, key agreement, and randomness, plus
// default implementations over the Go standard library and
// golang.org/x/crypto. Hosts may substitute their own implementations
// (e.g. a hardware HSM-backed signer) by satisfying these interfaces.
package crypto

import "io"

// Hasher computes a fixed-length digest. SHA-256 is the mandatory hash and
// is also the implicit hash used for the H0..H3 commitment chain
// regardless of the negotiated Hash algorithm.
type Hasher interface {
	// Size returns the digest length in bytes.
	Size() int
	// Sum returns the digest of data.
	Sum(data []byte) []byte
}

// MAC computes a keyed message authentication code.
type MAC interface {
	// Sum returns HMAC(key, data), truncated to the algorithm's native
	// output size (callers truncate further as needed, e.g. to 8 bytes
	// for ZRTP message MACs).
	Sum(key, data []byte) []byte
}

// BlockCipher performs CFB-mode encryption/decryption with the negotiated
// cipher (AES-128/256 or TwoFish), used only to protect the Confirm
// message body.
type BlockCipher interface {
	// KeySize returns the required key length in bytes.
	KeySize() int
	// BlockSize returns the cipher's block size in bytes (the IV length).
	BlockSize() int
	// EncryptCFB encrypts src into dst using the given key and IV.
	EncryptCFB(dst, src, key, iv []byte) error
	// DecryptCFB decrypts src into dst using the given key and IV.
	DecryptCFB(dst, src, key, iv []byte) error
}

// KeyAgreement produces a shared secret from a key-exchange round, covering
// finite-field DH (DH2k/DH3k), elliptic-curve DH (EC25/EC38), and
// encapsulation-based KEMs.
type KeyAgreement interface {
	// PublicValueLength returns the wire length of this algorithm's
	// public value, used to size the Commit/DHPart fields.
	PublicValueLength() int
	// GenerateKeyPair returns a fresh private scalar/seed and its
	// corresponding public value.
	GenerateKeyPair(rng io.Reader) (private []byte, public []byte, err error)
	// SharedSecret derives the raw DH/ECDH/KEM result given our private
	// value and the peer's public value.
	SharedSecret(private, peerPublic []byte) ([]byte, error)
	// IsWeak reports whether a received public value is a known weak
	// point (e.g. 1 or p-1 for finite-field DH). The reference
	// implementation omits this check (spec.md §9); a correct one must
	// perform it.
	IsWeak(peerPublic []byte) bool
}

// RNG is the source of cryptographic randomness, e.g. for H0, nonces, and
// DH private values.
type RNG interface {
	io.Reader
}
