package zrtp

import (
	"github.com/lanikai/gozrtp/wire"
	"github.com/lanikai/gozrtp/zrtperrors"
)

// stateSendingGoClear requests the peer fall back to cleartext media. Gated
// behind Session.enableGoClear; off by default.
func stateSendingGoClear(ch *Channel, s *Session, ev event) (stateFunc, []action, error) {
	switch ev.kind {
	case eventInit:
		msg, err := wire.BuildGoClear(ch.mac(s), ch.selfChain.H0[:])
		if err != nil {
			return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.BuilderFailure, err)
		}
		ch.stored.selfGoClear = msg
		return stateSendingGoClear, []action{
			{kind: actionStartStepTimer},
			{kind: actionSend, packet: wirePacket(ch, msg)},
		}, nil

	case eventMessage:
		if ev.msgType != wire.MsgClearACK {
			return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.Unexpected)
		}
		ch.isSecure = false
		return stateClear, []action{{kind: actionStopTimer}}, nil

	case eventTimer:
		return stateSendingGoClear, []action{
			{kind: actionSend, packet: wirePacket(ch, ch.stored.selfGoClear)},
		}, nil

	default:
		return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.Unexpected)
	}
}

// stateClear is entered on receipt of a peer GoClear. It acknowledges and
// waits for the host to drive the channel BACK-TO-SECURE.
func stateClear(ch *Channel, s *Session, ev event) (stateFunc, []action, error) {
	switch ev.kind {
	case eventMessage:
		if ev.msgType != wire.MsgGoClear {
			return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.Unexpected)
		}
		_, _, err := wire.ParseGoClear(ev.fields)
		if err != nil {
			return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.InvalidPacket, err)
		}
		ch.stored.peerGoClear = ev.fields

		ack, err := wire.BuildEmpty(wire.MsgClearACK)
		if err != nil {
			return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.BuilderFailure, err)
		}
		return stateClear, []action{
			{kind: actionSend, packet: wirePacket(ch, ack)},
			{kind: actionStatus, status: StatusGoClearRequested},
		}, nil

	case eventAcceptGoClear:
		ch.isSecure = false
		return stateClear, []action{
			{kind: actionStatus, status: StatusGoClearAccepted},
		}, nil

	case eventBackToSecure:
		ch.isSecure = true
		return stateSecure, nil, nil

	default:
		return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.Unexpected)
	}
}
