// Package zidcache provides the persistent ZID cache the engine queries for
// long-term secrets bound to a peer identity, per spec.md §6.
package zidcache

import "time"

// Entry is one peer ZID's persisted row: {self_zid, peer_zid, rs1, rs2,
// auxsecret_optional, pbxsecret_optional, previously_verified_sas_bool,
// last_update}, per spec.md §6. Aux and PBX secrets are optional; RS2 may
// be absent before the second successful session.
type Entry struct {
	SelfZID             [12]byte
	PeerZID             [12]byte
	RS1                 []byte
	RS2                 []byte
	AuxSecret           []byte
	PBXSecret           []byte
	PreviouslyVerified  bool
	LastUpdate          time.Time
}

// Store is the host-supplied typed key/value store keyed by peer ZID. The
// engine never inspects cache internals beyond these five typed fields; the
// schema backing a Store implementation is opaque to the core.
type Store interface {
	// Load returns the entry for (selfZID, peerZID), or ok=false if no row
	// exists yet.
	Load(selfZID, peerZID [12]byte) (entry Entry, ok bool, err error)

	// Store upserts the entry, keyed by (entry.SelfZID, entry.PeerZID).
	Store(entry Entry) error
}
