// Package secrets computes the cached-secret IDs exchanged in DHPart, per
// spec.md §4.6. The rs1/rs2 rotation on reaching secure is done by package
// zrtp (rotateRetainedSecret), not here.
package secrets

import (
	"crypto/rand"
	"io"

	zcrypto "github.com/lanikai/gozrtp/crypto"
)

// Cached is the quadruple of long-term secrets a ZID cache entry may hold
// for a given peer. A nil field means the secret is not held.
type Cached struct {
	RS1        []byte
	RS2        []byte
	AuxSecret  []byte
	PBXSecret  []byte
}

// IDs is the quadruple of 8-byte IDs sent on the wire in DHPart, one per
// cached secret.
type IDs struct {
	RS1ID       [8]byte
	RS2ID       [8]byte
	AuxSecretID [8]byte
	PBXSecretID [8]byte
}

// truncatedHMAC computes HMAC(secret, label) truncated to 8 bytes. A nil
// secret yields a fresh random ID instead, so the wire representation never
// reveals whether a secret is held.
func truncatedHMAC(mac zcrypto.MAC, secret []byte, label string, rng io.Reader) ([8]byte, error) {
	var id [8]byte
	if secret == nil {
		if _, err := io.ReadFull(rng, id[:]); err != nil {
			return id, err
		}
		return id, nil
	}
	sum := mac.Sum(secret, []byte(label))
	copy(id[:], sum[:8])
	return id, nil
}

// ComputeIDs derives the four DHPart cached-secret IDs for one role.
// isInitiator selects which HMAC label ("Initiator"/"Responder") is used
// for rs1/rs2/pbxsecret; auxHash is this role's H3 (self H3 if initiator,
// peer H3 if responder), since the auxsecret ID is channel-scoped.
func ComputeIDs(mac zcrypto.MAC, c Cached, isInitiator bool, auxHash [32]byte, rng io.Reader) (IDs, error) {
	label := "Responder"
	if isInitiator {
		label = "Initiator"
	}

	var ids IDs
	var err error
	if ids.RS1ID, err = truncatedHMAC(mac, c.RS1, label, rng); err != nil {
		return ids, err
	}
	if ids.RS2ID, err = truncatedHMAC(mac, c.RS2, label, rng); err != nil {
		return ids, err
	}
	if ids.PBXSecretID, err = truncatedHMAC(mac, c.PBXSecret, label, rng); err != nil {
		return ids, err
	}

	if c.AuxSecret != nil {
		sum := mac.Sum(c.AuxSecret, auxHash[:])
		copy(ids.AuxSecretID[:], sum[:8])
	} else if _, err := io.ReadFull(rng, ids.AuxSecretID[:]); err != nil {
		return ids, err
	}
	return ids, nil
}

// Matches reports whether a peer-advertised ID matches a locally held
// secret's own ID under the same label/hash inputs.
func Matches(want, got [8]byte) bool {
	return want == got
}

// DefaultRNG is used when callers don't supply their own source of
// randomness for ID generation.
var DefaultRNG io.Reader = rand.Reader
