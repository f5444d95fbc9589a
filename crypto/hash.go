package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
)

// SHA256Hasher is the mandatory hash algorithm (HMAC-SHA256 category) and
// also implements the fixed implicit hash used for the H0..H3 chain.
type SHA256Hasher struct{}

func (SHA256Hasher) Size() int { return sha256.Size }

func (SHA256Hasher) Sum(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// SHA384Hasher supports the optional SHA384 hash category.
type SHA384Hasher struct{}

func (SHA384Hasher) Size() int { return sha512.Size384 }

func (SHA384Hasher) Sum(data []byte) []byte {
	sum := sha512.Sum384(data)
	return sum[:]
}

// HMACMac implements MAC over a specific underlying hash constructor.
type HMACMac struct {
	New func() hash.Hash
}

func NewHMACSHA256() *HMACMac {
	return &HMACMac{New: sha256.New}
}

func NewHMACSHA384() *HMACMac {
	return &HMACMac{New: sha512.New384}
}

func (m *HMACMac) Sum(key, data []byte) []byte {
	mac := hmac.New(m.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}
