package zrtp

import "github.com/lanikai/gozrtp/keyschedule"

// StatusEvent is a human-facing notice the engine raises for things that
// don't change protocol state: timeouts, cache mismatches, a SASrelay
// arriving, GoClear requests.
type StatusEvent int

const (
	StatusTimeout StatusEvent = iota
	StatusCacheMismatch
	StatusSecure
	StatusSASRelayReceived
	StatusGoClearRequested
	StatusGoClearAccepted
)

// Callbacks are the host-supplied collaborators the engine calls out to.
// None of them may block for long; the engine itself never spawns
// goroutines or performs I/O.
type Callbacks struct {
	// Send transmits a fully built wire packet (header + message + CRC) to
	// the peer on the given channel.
	Send func(channelTag string, packet []byte) error

	// SRTPSecretsAvailable delivers the derived SRTP keying material once a
	// channel reaches secure.
	SRTPSecretsAvailable func(channelTag string, secrets keyschedule.SRTPSecrets, exportedKey []byte)

	// StartSRTP tells the host it may begin (or resume, after GoClear) using
	// SRTP on the given channel.
	StartSRTP func(channelTag string)

	// StatusMessage reports a non-fatal event for the host to log or surface
	// to the user, along with the short authentication string once known.
	StatusMessage func(channelTag string, event StatusEvent, sas string)
}
