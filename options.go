package zrtp

import (
	"io"

	"github.com/lanikai/gozrtp/negotiate"
	"github.com/lanikai/gozrtp/wire"
)

const (
	// DefaultMTU is the default packet size ceiling a session negotiates,
	// per spec.md §5.
	DefaultMTU = 1452
	// MinMTU is the smallest MTU a host may configure.
	MinMTU = 600
	// MaxChannels bounds how many channels one session may host.
	MaxChannels = 64
)

// Option configures a Session at construction time.
type Option func(*Session)

// WithZID fixes the session's own ZID instead of loading/generating one.
func WithZID(zid ZID) Option {
	return func(s *Session) { s.selfZID = zid; s.haveZID = true }
}

// WithRNG overrides the session's source of randomness.
func WithRNG(rng io.Reader) Option {
	return func(s *Session) { s.rng = rng }
}

// WithMTU overrides DefaultMTU, clamped to at least MinMTU.
func WithMTU(mtu int) Option {
	return func(s *Session) {
		if mtu < MinMTU {
			mtu = MinMTU
		}
		s.mtu = mtu
	}
}

// WithMenu overrides the session's locally supported algorithm menu before
// mandatory-entry injection.
func WithMenu(menu negotiate.Menu) Option {
	return func(s *Session) { s.menu = menu }
}

// WithClientID overrides the 16-byte client identifier advertised in Hello.
func WithClientID(id [16]byte) Option {
	return func(s *Session) { s.clientID = id }
}

// WithEnableGoClear opts into the GoClear cleartext-fallback transitions,
// off by default.
func WithEnableGoClear(enable bool) Option {
	return func(s *Session) { s.enableGoClear = enable }
}

// defaultMenu is the locally supported algorithm menu before mandatory
// injection, matching the common RFC 6189 profile.
func defaultMenu() negotiate.Menu {
	return negotiate.Menu{
		Hash:         []wire.Tag{wire.TagS256, wire.TagS384},
		Cipher:       []wire.Tag{wire.TagAES1, wire.TagAES3, wire.Tag2FS1, wire.Tag2FS3},
		AuthTag:      []wire.Tag{wire.TagHS32, wire.TagHS80},
		KeyAgreement: []wire.Tag{wire.TagDH3k, wire.TagDH4k, wire.TagEC25, wire.TagMult},
		SAS:          []wire.Tag{wire.TagB32, wire.TagB256},
	}
}
