package zrtp

import "github.com/lanikai/gozrtp/wire"

// eventKind distinguishes the inputs a channel's state function can react
// to, per spec.md §4.4.
type eventKind int

const (
	eventInit eventKind = iota
	eventMessage
	eventTimer
	eventGoClearUser
	eventAcceptGoClear
	eventBackToSecure
)

// event is the single input type every stateFunc consumes.
type event struct {
	kind eventKind

	// Populated for eventMessage.
	msgType wire.MessageType
	header  wire.Header
	fields  []byte // frame-stripped message fields
}

// actionKind tags what an action asks the channel/session to do once a
// stateFunc returns.
type actionKind int

const (
	actionSend actionKind = iota
	actionStartHelloTimer
	actionStartStepTimer
	actionStopTimer
	actionSecretsAvailable
	actionStartSRTP
	actionStatus
)

// action is one side effect a stateFunc requests. State functions are pure:
// they never call callbacks or mutate the timer directly, only describe
// what should happen via the returned action list.
type action struct {
	kind   actionKind
	packet []byte

	status StatusEvent
	sas    string
}

// stateFunc is one state's transition function: given the channel/session
// and an event, it returns the next state, the actions to perform, and an
// error if the event was invalid for the current state (in which case the
// channel does not transition, per spec.md §4.8).
type stateFunc func(ch *Channel, s *Session, ev event) (stateFunc, []action, error)
