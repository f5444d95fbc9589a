package zrtp

import (
	"time"

	"github.com/lanikai/gozrtp/crypto"
	"github.com/lanikai/gozrtp/keyschedule"
	"github.com/lanikai/gozrtp/negotiate"
	"github.com/lanikai/gozrtp/secrets"
	"github.com/lanikai/gozrtp/wire"
	"github.com/lanikai/gozrtp/zrtperrors"
)

// Role is a channel's position in the handshake: the side that sends
// Commit is the initiator by default, subject to commit contention.
type Role int

const (
	RoleInitiator Role = iota
	RoleResponder
)

// storedMessages holds the verbatim (header-stripped) bytes of every
// message a channel has sent or received, since later messages authenticate
// earlier ones by MAC over exactly those bytes.
type storedMessages struct {
	selfHello, peerHello     []byte
	selfCommit, peerCommit   []byte
	selfDHPart, peerDHPart   []byte
	selfConfirm, peerConfirm []byte
	selfGoClear, peerGoClear []byte
}

// Channel is one ZRTP exchange over one RTP stream. Channel 0 on a session
// performs the full DH exchange; subsequent channels use multistream mode
// keyed from the session's ZRTPSess.
type Channel struct {
	Tag string // host-chosen identifier, echoed back in callbacks

	isMainChannel bool
	isSecure      bool

	selfSSRC uint32
	peerSSRC uint32
	haveSSRC bool

	role Role

	state stateFunc
	timer retransmitTimer

	selfSeq      uint16
	lastPeerSeq  uint16
	havePeerSeq  bool
	selfMsgID    uint16

	selfChain keyschedule.HashChain
	peerChain keyschedule.PeerChain

	negotiated   negotiate.Result
	hashLength   int
	cipherKeyLen int

	stored storedMessages

	// DH/ECDH key-agreement state.
	dhPriv, dhPub []byte
	peerDHPub     []byte

	cachedIDs secrets.IDs
	heldCache secrets.Cached

	s0          []byte
	kdfContext  []byte
	derived     keyschedule.DerivedKeys
	zrtpSess    []byte
	srtp        keyschedule.SRTPSecrets
	exportedKey []byte
	sasvalue    uint32

	reassembler wire.Reassembler
}

// NewChannel constructs an idle channel; Session.ChannelAdd arms it and
// drives its first event.
func NewChannel(tag string, isMainChannel bool) *Channel {
	return &Channel{
		Tag:           tag,
		isMainChannel: isMainChannel,
		role:          RoleInitiator,
		state:         stateDiscoveryInit,
	}
}

// Deliver hands an inbound wire packet to the channel. Packets are
// validated (CRC, magic cookie, sequence ordering, fragmentation) before
// reaching the state machine; validation failures are reported without
// changing state, per spec.md §4.8.
func (ch *Channel) Deliver(s *Session, packet []byte) error {
	if len(packet) < wire.MinPacketLength || len(packet) > wire.MaxPacketLength {
		return zrtperrors.New(ch.Tag, zrtperrors.InvalidPacket)
	}
	if !wire.VerifyCRC(packet) {
		return zrtperrors.New(ch.Tag, zrtperrors.InvalidPacket)
	}
	header, err := wire.DecodeHeader(packet)
	if err != nil {
		return zrtperrors.Wrap(ch.Tag, zrtperrors.InvalidPacket, err)
	}

	if !ch.haveSSRC {
		ch.peerSSRC = header.SSRC
		ch.haveSSRC = true
	}

	body := packet[wire.HeaderLength : len(packet)-wire.CRCLength]

	var messageBytes []byte
	if header.Fragmented {
		fh, payload, err := wire.DecodeFragment(body)
		if err != nil {
			return zrtperrors.Wrap(ch.Tag, zrtperrors.Fragment, err)
		}
		complete, err := ch.reassembler.Add(fh, payload)
		if err != nil {
			return zrtperrors.Wrap(ch.Tag, zrtperrors.Fragment, err)
		}
		if complete == nil {
			return nil // await remaining fragments
		}
		messageBytes = complete
	} else {
		if ch.havePeerSeq && header.SequenceNumber <= ch.lastPeerSeq {
			return zrtperrors.New(ch.Tag, zrtperrors.OutOfOrder)
		}
		ch.lastPeerSeq = header.SequenceNumber
		ch.havePeerSeq = true
		messageBytes = body
	}

	msgType, fields, err := wire.ParseFrame(messageBytes)
	if err != nil {
		return zrtperrors.Wrap(ch.Tag, zrtperrors.InvalidPacket, err)
	}

	ev := event{kind: eventMessage, msgType: msgType, header: header, fields: fields}
	return ch.dispatch(s, ev)
}

// Tick advances the channel's retransmission timer by d and fires a
// retransmission event if due.
func (ch *Channel) Tick(s *Session, d time.Duration) error {
	fire, expired := ch.timer.tick(d)
	if expired {
		if s.callbacks.StatusMessage != nil {
			s.callbacks.StatusMessage(ch.Tag, StatusTimeout, "")
		}
		return zrtperrors.New(ch.Tag, zrtperrors.Timeout)
	}
	if !fire {
		return nil
	}
	return ch.dispatch(s, event{kind: eventTimer})
}

// Start drives the channel's INIT event, beginning the handshake.
func (ch *Channel) Start(s *Session) error {
	return ch.dispatch(s, event{kind: eventInit})
}

func (ch *Channel) dispatch(s *Session, ev event) error {
	next, actions, err := ch.state(ch, s, ev)
	if err != nil {
		if s.log != nil {
			s.log.Debug("channel %q: %v", ch.Tag, err)
		}
		return err
	}
	for _, a := range actions {
		ch.execute(s, a)
	}
	if next != nil {
		ch.state = next
	}
	return nil
}

func (ch *Channel) execute(s *Session, a action) {
	switch a.kind {
	case actionSend:
		ch.selfSeq++
		packet := append([]byte(nil), a.packet...)
		_ = wire.SetSequenceNumber(packet, ch.selfSeq)

		if len(packet) > s.mtu {
			ch.selfMsgID++
			message := packet[wire.HeaderLength : len(packet)-wire.CRCLength]
			header := wire.Header{SequenceNumber: ch.selfSeq, SSRC: ch.selfSSRC}
			fragments, err := wire.BuildFragments(ch.selfMsgID, message, header, s.mtu)
			if err == nil {
				for _, frag := range fragments {
					if s.callbacks.Send != nil {
						_ = s.callbacks.Send(ch.Tag, frag)
					}
				}
				return
			}
			if s.log != nil {
				s.log.Warn("channel %q: failed to fragment %d-byte packet: %v", ch.Tag, len(packet), err)
			}
		}

		if s.callbacks.Send != nil {
			_ = s.callbacks.Send(ch.Tag, packet)
		}
	case actionStartHelloTimer:
		ch.timer = newHelloTimer()
	case actionStartStepTimer:
		ch.timer = newStepTimer()
	case actionStopTimer:
		ch.timer.stop()
	case actionSecretsAvailable:
		if s.callbacks.SRTPSecretsAvailable != nil {
			s.callbacks.SRTPSecretsAvailable(ch.Tag, ch.srtp, ch.exportedKey)
		}
	case actionStartSRTP:
		if s.callbacks.StartSRTP != nil {
			s.callbacks.StartSRTP(ch.Tag)
		}
	case actionStatus:
		if s.log != nil {
			s.log.Info("channel %q: status %d", ch.Tag, a.status)
		}
		if s.callbacks.StatusMessage != nil {
			s.callbacks.StatusMessage(ch.Tag, a.status, a.sas)
		}
	}
}

func (ch *Channel) hasher(s *Session) crypto.Hasher {
	if ch.negotiated.Hash == wire.TagS384 {
		return crypto.SHA384Hasher{}
	}
	return crypto.SHA256Hasher{}
}

func (ch *Channel) mac(s *Session) crypto.MAC {
	if ch.negotiated.Hash == wire.TagS384 {
		return crypto.NewHMACSHA384()
	}
	return crypto.NewHMACSHA256()
}
