package zrtp

import (
	"bytes"

	"github.com/lanikai/gozrtp/keyschedule"
	"github.com/lanikai/gozrtp/negotiate"
	"github.com/lanikai/gozrtp/secrets"
	"github.com/lanikai/gozrtp/wire"
	"github.com/lanikai/gozrtp/zrtperrors"
)

func buildHello(ch *Channel, s *Session) ([]byte, error) {
	h := &wire.Hello{
		Version:      [4]byte{'1', '.', '1', '0'},
		ClientID:     s.clientID,
		H3:           ch.selfChain.H3,
		ZID:          s.selfZID,
		Hash:         s.menu.Hash,
		Cipher:       s.menu.Cipher,
		AuthTag:      s.menu.AuthTag,
		KeyAgreement: s.menu.KeyAgreement,
		SAS:          s.menu.SAS,
	}
	msg, err := wire.BuildHello(h, ch.mac(s), ch.selfChain.H2[:])
	if err != nil {
		return nil, zrtperrors.Wrap(ch.Tag, zrtperrors.BuilderFailure, err)
	}
	ch.stored.selfHello = msg
	return wirePacket(ch, msg), nil
}

// wirePacket prepends the 12-byte packet header and trailing CRC to an
// already-built message.
func wirePacket(ch *Channel, msg []byte) []byte {
	packet := make([]byte, wire.HeaderLength+len(msg))
	wire.EncodeHeader(packet[:wire.HeaderLength], wire.Header{
		Fragmented:     false,
		SequenceNumber: 0, // rewritten by Channel.execute on every send
		SSRC:           ch.selfSSRC,
	})
	copy(packet[wire.HeaderLength:], msg)
	return wire.AppendCRC(packet)
}

// stateDiscoveryInit is state 1 of spec.md §4.4.
func stateDiscoveryInit(ch *Channel, s *Session, ev event) (stateFunc, []action, error) {
	switch ev.kind {
	case eventInit:
		chain, err := newHashChainForChannel(s)
		if err != nil {
			return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.CryptoFailure, err)
		}
		ch.selfChain = chain
		packet, err := buildHello(ch, s)
		if err != nil {
			return nil, nil, err
		}
		return stateDiscoveryInit, []action{
			{kind: actionStartHelloTimer},
			{kind: actionSend, packet: packet},
		}, nil

	case eventMessage:
		switch ev.msgType {
		case wire.MsgHello:
			if err := handlePeerHello(ch, s, ev.fields); err != nil {
				return nil, nil, err
			}
			ack, err := wire.BuildEmpty(wire.MsgHelloACK)
			if err != nil {
				return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.BuilderFailure, err)
			}
			return stateWaitingForHelloAck, []action{
				{kind: actionSend, packet: wirePacket(ch, ack)},
			}, nil

		case wire.MsgHelloACK:
			return stateWaitingForHello, []action{{kind: actionStopTimer}}, nil

		default:
			return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.Unexpected)
		}

	case eventTimer:
		return stateDiscoveryInit, []action{
			{kind: actionSend, packet: wirePacket(ch, ch.stored.selfHello)},
		}, nil

	default:
		return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.Unexpected)
	}
}

// handlePeerHello parses the peer's Hello, records its H3, negotiates
// algorithms, and computes this channel's cached-secret IDs. Shared by
// discovery_init (peer Hello arrives before our own is ACKed) and
// waitingForHello (our Hello was ACKed first).
func handlePeerHello(ch *Channel, s *Session, fields []byte) error {
	hello, macField, err := wire.ParseHello(fields)
	if err != nil {
		return zrtperrors.Wrap(ch.Tag, zrtperrors.InvalidPacket, err)
	}
	_ = macField // the full fields (including this MAC) are kept in ch.stored.peerHello; verified once Commit reveals H2

	copy(s.peerZID[:], hello.ZID[:])
	s.havePeerZID = true
	ch.peerChain.RevealH3(hello.H3)
	ch.stored.peerHello = fields

	peerMenu := negotiate.Menu{Hash: hello.Hash, Cipher: hello.Cipher, AuthTag: hello.AuthTag, KeyAgreement: hello.KeyAgreement, SAS: hello.SAS}
	result, err := negotiate.Negotiate(s.menu, peerMenu)
	if err != nil {
		return zrtperrors.Wrap(ch.Tag, zrtperrors.InvalidContext, err)
	}
	peerAdvertisesMultistream := false
	for _, tag := range peerMenu.KeyAgreement {
		if tag == wire.TagMult {
			peerAdvertisesMultistream = true
			break
		}
	}
	result = negotiate.UpgradeToMultistream(result, peerAdvertisesMultistream, s.zrtpSess != nil)
	ch.negotiated = result
	ch.hashLength = negotiate.HashLength(result.Hash)
	ch.cipherKeyLen = negotiate.CipherKeyLength(result.Cipher)

	entry, have := s.loadCachedSecrets()
	if have {
		ch.heldCache = secrets.Cached{RS1: entry.RS1, RS2: entry.RS2, AuxSecret: entry.AuxSecret, PBXSecret: entry.PBXSecret}
	}
	isInitiator := ch.role == RoleInitiator
	auxHash := ch.selfChain.H3
	if !isInitiator {
		auxHash = ch.peerChain.H3
	}
	ids, err := secrets.ComputeIDs(ch.mac(s), ch.heldCache, isInitiator, auxHash, s.rng)
	if err != nil {
		return zrtperrors.Wrap(ch.Tag, zrtperrors.CryptoFailure, err)
	}
	ch.cachedIDs = ids
	return nil
}

// stateWaitingForHello is state 2: our own Hello was already ACKed, and
// we're waiting for the peer's.
func stateWaitingForHello(ch *Channel, s *Session, ev event) (stateFunc, []action, error) {
	if ev.kind != eventMessage || ev.msgType != wire.MsgHello {
		return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.Unexpected)
	}
	if err := handlePeerHello(ch, s, ev.fields); err != nil {
		return nil, nil, err
	}
	ack, err := wire.BuildEmpty(wire.MsgHelloACK)
	if err != nil {
		return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.BuilderFailure, err)
	}
	next, actions, err := stateSendingCommit(ch, s, event{kind: eventInit})
	if err != nil {
		return nil, nil, err
	}
	actions = append([]action{{kind: actionSend, packet: wirePacket(ch, ack)}}, actions...)
	return next, actions, nil
}

// stateWaitingForHelloAck is state 3.
func stateWaitingForHelloAck(ch *Channel, s *Session, ev event) (stateFunc, []action, error) {
	switch ev.kind {
	case eventMessage:
		switch ev.msgType {
		case wire.MsgHello:
			if !bytes.Equal(ev.fields, ch.stored.peerHello) {
				return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.UnmatchingRepetition)
			}
			ack, err := wire.BuildEmpty(wire.MsgHelloACK)
			if err != nil {
				return nil, nil, zrtperrors.Wrap(ch.Tag, zrtperrors.BuilderFailure, err)
			}
			return stateWaitingForHelloAck, []action{{kind: actionSend, packet: wirePacket(ch, ack)}}, nil
		case wire.MsgHelloACK:
			return stateSendingCommit(ch, s, event{kind: eventInit})
		case wire.MsgCommit:
			ch.role = RoleResponder
			return stateRespondToCommit(ch, s, ev)
		default:
			return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.Unexpected)
		}
	case eventTimer:
		return stateWaitingForHelloAck, []action{{kind: actionSend, packet: wirePacket(ch, ch.stored.selfHello)}}, nil
	default:
		return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.Unexpected)
	}
}

func newHashChainForChannel(s *Session) (keyschedule.HashChain, error) {
	c, err := keyschedule.NewHashChain(s.rng)
	if err != nil {
		return keyschedule.HashChain{}, err
	}
	return *c, nil
}
