package zrtp

import (
	"github.com/lanikai/gozrtp/secrets"
	"github.com/lanikai/gozrtp/wire"
	"github.com/lanikai/gozrtp/zrtperrors"
)

func buildCommit(ch *Channel, s *Session) ([]byte, []byte, error) {
	c := &wire.Commit{
		H2:           ch.selfChain.H2,
		ZID:          s.selfZID,
		Hash:         ch.negotiated.Hash,
		Cipher:       ch.negotiated.Cipher,
		AuthTag:      ch.negotiated.AuthTag,
		KeyAgreement: ch.negotiated.KeyAgreement,
		SAS:          ch.negotiated.SAS,
	}

	var selfDHPartMsg []byte
	if c.IsSharedSecretMode() {
		if _, err := s.rng.Read(c.Nonce[:]); err != nil {
			return nil, nil, err
		}
	} else {
		ka := keyAgreementFor(ch.negotiated.KeyAgreement)
		priv, pub, err := ka.GenerateKeyPair(s.rng)
		if err != nil {
			return nil, nil, err
		}
		ch.dhPriv, ch.dhPub = priv, pub

		dhPartMsg, err := buildDHPart(ch, s, true /* DHPart2: initiator's */)
		if err != nil {
			return nil, nil, err
		}
		selfDHPartMsg = dhPartMsg

		hvi := ch.hasher(s).Sum(append(append([]byte(nil), dhPartMsg...), ch.stored.peerHello...))
		copy(c.HVI[:], hvi)
	}

	msg, err := wire.BuildCommit(c, ch.mac(s), ch.selfChain.H1[:])
	if err != nil {
		return nil, nil, err
	}
	return msg, selfDHPartMsg, nil
}

func buildDHPart(ch *Channel, s *Session, isDHPart2 bool) ([]byte, error) {
	d := &wire.DHPart{
		H1:          ch.selfChain.H1,
		RS1ID:       ch.cachedIDs.RS1ID,
		RS2ID:       ch.cachedIDs.RS2ID,
		AuxSecretID: ch.cachedIDs.AuxSecretID,
		PBXSecretID: ch.cachedIDs.PBXSecretID,
		PublicValue: ch.dhPub,
	}
	return wire.BuildDHPart(!isDHPart2, d, ch.mac(s), ch.selfChain.H0[:])
}

// stateSendingCommit is state 4 of spec.md §4.4.
func stateSendingCommit(ch *Channel, s *Session, ev event) (stateFunc, []action, error) {
	switch ev.kind {
	case eventInit:
		msg, dhPartMsg, err := buildCommit(ch, s)
		if err != nil {
			return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.BuilderFailure, err)
		}
		ch.stored.selfCommit = msg
		ch.stored.selfDHPart = dhPartMsg
		return stateSendingCommit, []action{
			{kind: actionStartStepTimer},
			{kind: actionSend, packet: wirePacket(ch, msg)},
		}, nil

	case eventMessage:
		switch ev.msgType {
		case wire.MsgCommit:
			theirs, _, err := wire.ParseCommit(ev.fields)
			if err != nil {
				return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.InvalidPacket, err)
			}
			// The stored own Commit is the full built frame; ParseCommit
			// takes frame-stripped fields.
			_, ourFields, err := wire.ParseFrame(ch.stored.selfCommit)
			if err != nil {
				return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.InvalidPacket, err)
			}
			ours, _, err := wire.ParseCommit(append(ourFields[:0:0], ourFields...))
			if err != nil {
				return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.InvalidPacket, err)
			}
			peerHello, _, err := wire.ParseHello(ch.stored.peerHello)
			if err != nil {
				return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.InvalidPacket, err)
			}
			// This endpoint's own Hello never sets the MITM flag.
			if contentionLoses(ours, theirs, false, peerHello.MITM) {
				ch.role = RoleResponder
				ch.stored.peerCommit = ev.fields
				return enterResponderBranch(ch, s, theirs)
			}
			return stateSendingCommit, nil, nil // ignore, remain initiator

		case wire.MsgDHPart1:
			if ch.negotiated.IsSharedSecretMode() {
				return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.Unexpected)
			}
			peer, _, err := wire.ParseDHPart(ev.fields)
			if err != nil {
				return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.InvalidPacket, err)
			}
			if err := ch.peerChain.Reveal(1, peer.H1); err != nil {
				return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.UnmatchingHashChain, err)
			}
			// The responder sends no Commit of its own, so there is nothing
			// keyed by this H1 to verify unless contention left a peer
			// Commit on file.
			if len(ch.stored.peerCommit) > 0 && !wire.VerifyMAC(wire.MsgCommit, ch.stored.peerCommit, ch.mac(s), peer.H1[:]) {
				return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.UnmatchingMAC)
			}
			checkCachedSecretIDs(ch, s, peer)
			ch.peerDHPub = peer.PublicValue
			ch.stored.peerDHPart = ev.fields

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
			return stateInitiatorSendingDHPart2(ch, s, event{kind: eventInit})

		case wire.MsgConfirm1:
			if !ch.negotiated.IsSharedSecretMode() {
				return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.Unexpected)
			}
			if ch.negotiated.KeyAgreement == wire.TagMult {
				if err := finishMultistreamKeyAgreement(ch, s); err != nil {
					return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.CryptoFailure, err)
				}
			} else if ch.negotiated.KeyAgreement == wire.TagPrsh {
				if err := finishPresharedKeyAgreement(ch, s); err != nil {
					return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.CryptoFailure, err)
				}
			}
			confirm, err := wire.ParseConfirm(ev.fields, cipherFor(ch.negotiated.Cipher), ch.mac(s), ch.derived.ZRTPKeyResponder, ch.derived.MacKeyResponder)
			if err != nil {
				return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.UnmatchingConfirmMAC, err)
			}
			if err := ch.peerChain.Reveal(0, confirm.H0); err != nil {
				return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.UnmatchingHashChain, err)
			}
			ch.stored.peerConfirm = ev.fields
			return stateInitiatorSendingConfirm2(ch, s, event{kind: eventInit})

		default:
			return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.Unexpected)
		}

	case eventTimer:
		return stateSendingCommit, []action{
			{kind: actionSend, packet: wirePacket(ch, ch.stored.selfCommit)},
		}, nil

	default:
		return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.Unexpected)
	}
}

// stateRespondToCommit handles the first arrival of a Commit while this
// channel was still advertising Hello (waitingForHelloAck), before any
// contention is possible.
func stateRespondToCommit(ch *Channel, s *Session, ev event) (stateFunc, []action, error) {
	theirs, _, err := wire.ParseCommit(ev.fields)
	if err != nil {
		return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.InvalidPacket, err)
	}
	ch.stored.peerCommit = ev.fields
	return enterResponderBranch(ch, s, theirs)
}

// enterResponderBranch negotiates against the peer's Commit, computes
// cached-secret IDs as responder, and (for DH modes) builds and sends
// DHPart1 once, per spec.md §4.4 state 5.
func enterResponderBranch(ch *Channel, s *Session, theirs *wire.Commit) (stateFunc, []action, error) {
	ch.negotiated.Hash = theirs.Hash
	ch.negotiated.Cipher = theirs.Cipher
	ch.negotiated.AuthTag = theirs.AuthTag
	ch.negotiated.KeyAgreement = theirs.KeyAgreement
	ch.negotiated.SAS = theirs.SAS

	if err := ch.peerChain.Reveal(2, theirs.H2); err != nil {
		return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.UnmatchingHashChain, err)
	}
	if !wire.VerifyMAC(wire.MsgHello, ch.stored.peerHello, ch.mac(s), theirs.H2[:]) {
		return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.UnmatchingMAC)
	}

	ids, err := secrets.ComputeIDs(ch.mac(s), ch.heldCache, false, ch.peerChain.H3, s.rng)
	if err != nil {
		return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.CryptoFailure, err)
	}
	ch.cachedIDs = ids

	if theirs.IsSharedSecretMode() {
		if theirs.KeyAgreement == wire.TagMult {
			if err := finishMultistreamKeyAgreement(ch, s); err != nil {
				return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.CryptoFailure, err)
			}
		} else if theirs.KeyAgreement == wire.TagPrsh {
			if err := finishPresharedKeyAgreement(ch, s); err != nil {
				return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.CryptoFailure, err)
			}
		}
		return stateResponderSendingConfirm1(ch, s, event{kind: eventInit})
	}

	ka := keyAgreementFor(theirs.KeyAgreement)
	priv, pub, err := ka.GenerateKeyPair(s.rng)
	if err != nil {
		return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.CryptoFailure, err)
	}
	ch.dhPriv, ch.dhPub = priv, pub

	msg, err := buildDHPart(ch, s, false /* DHPart1 */)
	if err != nil {
		return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.BuilderFailure, err)
	}
	ch.stored.selfDHPart = msg

	return stateResponderSendingDHPart1, []action{
		{kind: actionSend, packet: wirePacket(ch, msg)},
	}, nil
}

// checkCachedSecretIDs compares the peer's advertised DHPart IDs against
// this side's secrets, for secrets it holds. The peer hashed its secrets
// under its own role's label, so this side's IDs are recomputed under that
// label (and the initiator's H3 for the aux ID) before comparing. Per
// spec.md §8 scenario 4, a mismatch is reported but does not abort the
// exchange.
func checkCachedSecretIDs(ch *Channel, s *Session, peer *wire.DHPart) {
	auxHash := ch.selfChain.H3
	if ch.role != RoleInitiator {
		auxHash = ch.peerChain.H3
	}
	want, err := secrets.ComputeIDs(ch.mac(s), ch.heldCache, ch.role != RoleInitiator, auxHash, s.rng)
	if err != nil {
		return
	}
	mismatch := false
	if ch.heldCache.RS1 != nil && !secrets.Matches(want.RS1ID, peer.RS1ID) && !secrets.Matches(want.RS2ID, peer.RS1ID) {
		mismatch = true
	}
	if ch.heldCache.AuxSecret != nil && !secrets.Matches(want.AuxSecretID, peer.AuxSecretID) {
		mismatch = true
	}
	if ch.heldCache.PBXSecret != nil && !secrets.Matches(want.PBXSecretID, peer.PBXSecretID) {
		mismatch = true
	}
	if mismatch && s.callbacks.StatusMessage != nil {
		s.callbacks.StatusMessage(ch.Tag, StatusCacheMismatch, "")
	}
}

