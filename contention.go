package zrtp

import (
	"bytes"

	"github.com/lanikai/gozrtp/wire"
)

// contentionLoses reports whether ours loses commit contention against
// theirs, per spec.md §4.5's ordered rules. When ours loses, the caller
// discards its own Commit, becomes responder, and (for DH) rebuilds its
// pre-built DHPart from type 2 to type 1, swapping initiator/responder
// auxiliary-secret IDs.
func contentionLoses(ours, theirs *wire.Commit, oursPBXorMITM, theirsPBXorMITM bool) bool {
	oursShared := ours.IsSharedSecretMode()
	theirsShared := theirs.IsSharedSecretMode()

	if ours.KeyAgreement != theirs.KeyAgreement {
		// Different key-agreement modes, exactly one Preshared: the
		// Preshared side loses.
		if ours.KeyAgreement == wire.TagPrsh {
			return true
		}
		if theirs.KeyAgreement == wire.TagPrsh {
			return false
		}
	}

	if oursShared && theirsShared {
		if ours.KeyAgreement == wire.TagPrsh && theirs.KeyAgreement == wire.TagPrsh && (oursPBXorMITM || theirsPBXorMITM) {
			// Both Preshared: the PBX side becomes responder.
			return oursPBXorMITM
		}
		return bytes.Compare(ours.Nonce[:], theirs.Nonce[:]) < 0
	}

	// Both DH-mode (or both ended up here): compare as big-endian unsigned
	// integers; the lower value becomes responder.
	return bytes.Compare(ours.HVI[:], theirs.HVI[:]) < 0
}
