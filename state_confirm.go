package zrtp

import (
	"bytes"
	"io"

	"github.com/lanikai/gozrtp/wire"
	"github.com/lanikai/gozrtp/zrtperrors"
)

func buildConfirm(ch *Channel, s *Session, isConfirm1 bool) ([]byte, error) {
	c := &wire.Confirm{H0: ch.selfChain.H0}

	cipher := cipherFor(ch.negotiated.Cipher)
	iv := make([]byte, cipher.BlockSize())
	if _, err := io.ReadFull(s.rng, iv); err != nil {
		return nil, err
	}

	zrtpKey, mackey := ch.derived.ZRTPKeyInitiator, ch.derived.MacKeyInitiator
	if isConfirm1 {
		zrtpKey, mackey = ch.derived.ZRTPKeyResponder, ch.derived.MacKeyResponder
	}
	return wire.BuildConfirm(isConfirm1, c, cipher, ch.mac(s), zrtpKey, mackey, iv)
}

// stateResponderSendingConfirm1 is state 7 of spec.md §4.4.
func stateResponderSendingConfirm1(ch *Channel, s *Session, ev event) (stateFunc, []action, error) {
	switch ev.kind {
	case eventInit:
		msg, err := buildConfirm(ch, s, true)
		if err != nil {
			return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.BuilderFailure, err)
		}
		ch.stored.selfConfirm = msg
		return stateResponderSendingConfirm1, []action{
			{kind: actionSend, packet: wirePacket(ch, msg)},
		}, nil

	case eventMessage:
		switch ev.msgType {
		case wire.MsgCommit, wire.MsgDHPart2:
			return stateResponderSendingConfirm1, []action{
				{kind: actionSend, packet: wirePacket(ch, ch.stored.selfConfirm)},
			}, nil

		case wire.MsgConfirm2:
			confirm, err := wire.ParseConfirm(ev.fields, cipherFor(ch.negotiated.Cipher), ch.mac(s), ch.derived.ZRTPKeyInitiator, ch.derived.MacKeyInitiator)
			if err != nil {
				return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.UnmatchingConfirmMAC, err)
			}
			if err := ch.peerChain.Reveal(0, confirm.H0); err != nil {
				return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.UnmatchingHashChain, err)
			}
			if len(ch.stored.peerDHPart) > 0 && !wire.VerifyMAC(wire.MsgDHPart2, ch.stored.peerDHPart, ch.mac(s), confirm.H0[:]) {
				return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.UnmatchingMAC)
			}
			ch.stored.peerConfirm = ev.fields
			ch.isSecure = true
			s.isSecure = true
			rotateRetainedSecret(ch, s)

			ack, err := wire.BuildEmpty(wire.MsgConf2ACK)
			if err != nil {
				return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.BuilderFailure, err)
			}
			return stateSecure, []action{
				{kind: actionSend, packet: wirePacket(ch, ack)},
				{kind: actionSecretsAvailable},
				{kind: actionStartSRTP},
				{kind: actionStatus, status: StatusSecure, sas: ch.sasString()},
			}, nil

		default:
			return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.Unexpected)
		}

	default:
		return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.Unexpected)
	}
}

// stateInitiatorSendingConfirm2 is state 8.
func stateInitiatorSendingConfirm2(ch *Channel, s *Session, ev event) (stateFunc, []action, error) {
	switch ev.kind {
	case eventInit:
		msg, err := buildConfirm(ch, s, false)
		if err != nil {
			return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.BuilderFailure, err)
		}
		ch.stored.selfConfirm = msg
		return stateInitiatorSendingConfirm2, []action{
			{kind: actionStartStepTimer},
			{kind: actionSend, packet: wirePacket(ch, msg)},
		}, nil

	case eventMessage:
		switch ev.msgType {
		case wire.MsgConfirm1:
			if !bytes.Equal(ev.fields, ch.stored.peerConfirm) {
				return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.UnmatchingRepetition)
			}
			return stateInitiatorSendingConfirm2, nil, nil

		case wire.MsgConf2ACK:
			ch.isSecure = true
			s.isSecure = true
			rotateRetainedSecret(ch, s)
			return stateSecure, []action{
				{kind: actionStopTimer},
				{kind: actionSecretsAvailable},
				{kind: actionStartSRTP},
				{kind: actionStatus, status: StatusSecure, sas: ch.sasString()},
			}, nil

		default:
			return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.Unexpected)
		}

	case eventTimer:
		return stateInitiatorSendingConfirm2, []action{
			{kind: actionSend, packet: wirePacket(ch, ch.stored.selfConfirm)},
		}, nil

	default:
		return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.Unexpected)
	}
}
