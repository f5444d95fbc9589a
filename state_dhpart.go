package zrtp

import (
	"bytes"

	"github.com/lanikai/gozrtp/wire"
	"github.com/lanikai/gozrtp/zrtperrors"
)

// stateResponderSendingDHPart1 is state 5 of spec.md §4.4. The responder
// does not retransmit on its own timer; initiator retransmissions of
// Commit re-drive progress by asking for DHPart1 again.
func stateResponderSendingDHPart1(ch *Channel, s *Session, ev event) (stateFunc, []action, error) {
	if ev.kind != eventMessage {
		return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.Unexpected)
	}
	switch ev.msgType {
	case wire.MsgCommit:
		if !bytes.Equal(ev.fields, ch.stored.peerCommit) {
			return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.UnmatchingRepetition)
		}
		return stateResponderSendingDHPart1, []action{
			{kind: actionSend, packet: wirePacket(ch, ch.stored.selfDHPart)},
		}, nil

	case wire.MsgDHPart2:
		peer, _, err := wire.ParseDHPart(ev.fields)
		if err != nil {
			return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.InvalidPacket, err)
		}
		if err := ch.peerChain.Reveal(1, peer.H1); err != nil {
			return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.UnmatchingHashChain, err)
		}
		if !wire.VerifyMAC(wire.MsgCommit, ch.stored.peerCommit, ch.mac(s), peer.H1[:]) {
			return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.UnmatchingMAC)
		}
		checkCachedSecretIDs(ch, s, peer)
		ch.peerDHPub = peer.PublicValue
		ch.stored.peerDHPart = ev.fields

		ourCommit, _, err := wire.ParseCommit(ch.stored.peerCommit)
		if err != nil {
			return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.InvalidPacket, err)
		}
		hvi := ch.hasher(s).Sum(append(append([]byte(nil), ev.fields...), ch.stored.selfHello...))
		if !bytes.Equal(hvi, ourCommit.HVI[:]) {
			return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.UnmatchingHvi)
		}

		ka := keyAgreementFor(ch.negotiated.KeyAgreement)
		if ka.IsWeak(peer.PublicValue) {
			return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.CryptoFailure)
		}
		dhResult, err := ka.SharedSecret(ch.dhPriv, peer.PublicValue)
		if err != nil {
			return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.CryptoFailure, err)
		}
		if err := finishDHKeyAgreement(ch, s, dhResult, ch.stored.selfDHPart, ch.stored.peerDHPart); err != nil {
			return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.CryptoFailure, err)
		}
		return stateResponderSendingConfirm1(ch, s, event{kind: eventInit})

	default:
		return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.Unexpected)
	}
}

// stateInitiatorSendingDHPart2 is state 6.
func stateInitiatorSendingDHPart2(ch *Channel, s *Session, ev event) (stateFunc, []action, error) {
	switch ev.kind {
	case eventInit:
		return stateInitiatorSendingDHPart2, []action{
			{kind: actionStartStepTimer},
			{kind: actionSend, packet: wirePacket(ch, ch.stored.selfDHPart)},
		}, nil

	case eventMessage:
		switch ev.msgType {
		case wire.MsgDHPart1:
			if !bytes.Equal(ev.fields, ch.stored.peerDHPart) {
				return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.UnmatchingRepetition)
			}
			return stateInitiatorSendingDHPart2, nil, nil

		case wire.MsgConfirm1:
			confirm, err := wire.ParseConfirm(ev.fields, cipherFor(ch.negotiated.Cipher), ch.mac(s), ch.derived.ZRTPKeyResponder, ch.derived.MacKeyResponder)
			if err != nil {
				return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.UnmatchingConfirmMAC, err)
			}
			if err := ch.peerChain.Reveal(0, confirm.H0); err != nil {
				return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.UnmatchingHashChain, err)
			}
			if !wire.VerifyMAC(wire.MsgDHPart1, ch.stored.peerDHPart, ch.mac(s), confirm.H0[:]) {
				return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.UnmatchingMAC)
			}
			ch.stored.peerConfirm = ev.fields
			return stateInitiatorSendingConfirm2(ch, s, event{kind: eventInit})

		default:
			return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.Unexpected)
		}

	case eventTimer:
		return stateInitiatorSendingDHPart2, []action{
			{kind: actionSend, packet: wirePacket(ch, ch.stored.selfDHPart)},
		}, nil

	default:
		return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.Unexpected)
	}
}
