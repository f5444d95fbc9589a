// Package negotiate intersects local and peer algorithm menus per
// spec.md §4.3: for each category, the highest-priority local entry that
// also appears in the peer's list wins, after mandatory entries are
// injected into the local menu if absent.
package negotiate

import "github.com/lanikai/gozrtp/wire"

// Menu is one endpoint's algorithm preference list, highest priority first,
// for every negotiated category.
type Menu struct {
	Hash         []wire.Tag
	Cipher       []wire.Tag
	AuthTag      []wire.Tag
	KeyAgreement []wire.Tag
	SAS          []wire.Tag
}

// Mandatory entries injected into the local menu if missing, per spec.md
// §4.3.
var (
	mandatoryHash         = wire.TagS256
	mandatoryCipher       = wire.TagAES1
	mandatoryAuthTag      = wire.TagHS32
	mandatoryKeyAgreement = wire.TagDH3k
	mandatorySAS          = wire.TagB32
)

// WithMandatory returns m with each category's mandatory entry appended if
// not already present, preserving existing priority order.
func WithMandatory(m Menu) Menu {
	return Menu{
		Hash:         ensure(m.Hash, mandatoryHash),
		Cipher:       ensure(m.Cipher, mandatoryCipher),
		AuthTag:      ensure(m.AuthTag, mandatoryAuthTag),
		KeyAgreement: ensure(m.KeyAgreement, mandatoryKeyAgreement),
		SAS:          ensure(m.SAS, mandatorySAS),
	}
}

func ensure(list []wire.Tag, mandatory wire.Tag) []wire.Tag {
	for _, t := range list {
		if t == mandatory {
			return list
		}
	}
	return append(append([]wire.Tag(nil), list...), mandatory)
}

// Result holds the one algorithm chosen per category.
type Result struct {
	Hash         wire.Tag
	Cipher       wire.Tag
	AuthTag      wire.Tag
	KeyAgreement wire.Tag
	SAS          wire.Tag
}

// pick returns the highest-priority entry of local that also appears in
// peer, or false if the lists share nothing.
func pick(local, peer []wire.Tag) (wire.Tag, bool) {
	peerSet := make(map[wire.Tag]bool, len(peer))
	for _, t := range peer {
		peerSet[t] = true
	}
	for _, t := range local {
		if peerSet[t] {
			return t, true
		}
	}
	return wire.Tag{}, false
}

// Negotiate intersects local (with mandatory entries already injected) and
// the peer's advertised menu, selecting one algorithm per category.
func Negotiate(local, peer Menu) (Result, error) {
	var r Result
	var ok bool

	if r.Hash, ok = pick(local.Hash, peer.Hash); !ok {
		return r, errNoCommonAlgorithm("hash")
	}
	if r.Cipher, ok = pick(local.Cipher, peer.Cipher); !ok {
		return r, errNoCommonAlgorithm("cipher")
	}
	if r.AuthTag, ok = pick(local.AuthTag, peer.AuthTag); !ok {
		return r, errNoCommonAlgorithm("auth tag")
	}
	if r.KeyAgreement, ok = pick(local.KeyAgreement, peer.KeyAgreement); !ok {
		return r, errNoCommonAlgorithm("key agreement")
	}
	if r.SAS, ok = pick(local.SAS, peer.SAS); !ok {
		return r, errNoCommonAlgorithm("SAS")
	}
	return r, nil
}

// IsSharedSecretMode reports whether the negotiated key agreement is
// Multi or Preshared, skipping the DH exchange entirely.
func (r Result) IsSharedSecretMode() bool {
	return r.KeyAgreement == wire.TagMult || r.KeyAgreement == wire.TagPrsh
}

// UpgradeToMultistream applies spec.md §4.3's multistream upgrade rule: if
// the peer advertises multistream and the session already holds a ZRTPSess
// key, the channel's key agreement becomes Multi regardless of the
// per-category selection.
func UpgradeToMultistream(r Result, peerAdvertisesMultistream, haveZRTPSess bool) Result {
	if peerAdvertisesMultistream && haveZRTPSess {
		r.KeyAgreement = wire.TagMult
	}
	return r
}

type negotiationError struct {
	category string
}

func (e negotiationError) Error() string {
	return "negotiate: no common " + e.category + " algorithm"
}

func errNoCommonAlgorithm(category string) error {
	return negotiationError{category: category}
}

// HashLength returns the output length in bytes of the negotiated hash.
func HashLength(t wire.Tag) int {
	if t == wire.TagS384 {
		return 48
	}
	return 32
}

// CipherKeyLength returns the negotiated cipher's key length in bytes.
func CipherKeyLength(t wire.Tag) int {
	switch t {
	case wire.TagAES3, wire.Tag2FS3:
		return 32
	default:
		return 16
	}
}
