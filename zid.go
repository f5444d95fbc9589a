package zrtp

import (
	"crypto/rand"
	"io"
)

// ZID is the 12-byte identifier an endpoint generates once and persists,
// used to key its row in the peer's ZID cache.
type ZID [12]byte

// NewZID draws a random ZID from rng.
func NewZID(rng io.Reader) (ZID, error) {
	var z ZID
	if rng == nil {
		rng = rand.Reader
	}
	_, err := io.ReadFull(rng, z[:])
	return z, err
}
