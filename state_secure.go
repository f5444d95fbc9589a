package zrtp

import (
	"time"

	"github.com/lanikai/gozrtp/keyschedule"
	"github.com/lanikai/gozrtp/wire"
	"github.com/lanikai/gozrtp/zidcache"
	"github.com/lanikai/gozrtp/zrtperrors"
)

// rotateRetainedSecret implements spec.md §4.6's rs1 rotation: on reaching
// secure, new_rs1 = KDF(s0, "retained secret", KDF-context, 256); the old
// rs1 becomes rs2. Only the main (DH) channel holds cached secrets.
func rotateRetainedSecret(ch *Channel, s *Session) {
	if !ch.isMainChannel || s.cache == nil {
		return
	}
	newRS1 := keyschedule.DeriveRetainedSecret(ch.mac(s), ch.s0, ch.kdfContext)
	entry := zidcache.Entry{
		RS1:        newRS1,
		RS2:        ch.heldCache.RS1,
		AuxSecret:  ch.heldCache.AuxSecret,
		PBXSecret:  ch.heldCache.PBXSecret,
		LastUpdate: time.Now(),
	}
	_ = s.storeCachedSecrets(entry)
}

// stateSecure is state 9, terminal for the ZRTP exchange on this channel.
// If the host opts into GoClear (Session.enableGoClear), GOCLEAR-user and
// MESSAGE(GoClear) additionally transition to sending_goclear/clear.
func stateSecure(ch *Channel, s *Session, ev event) (stateFunc, []action, error) {
	switch ev.kind {
	case eventGoClearUser:
		if !s.enableGoClear {
			return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.Unexpected)
		}
		return stateSendingGoClear(ch, s, event{kind: eventInit})

	case eventMessage:
		if s.enableGoClear && ev.msgType == wire.MsgGoClear {
			return stateClear(ch, s, ev)
		}
		if ev.msgType == wire.MsgSASrelay {
			return stateSecure, []action{
				{kind: actionStatus, status: StatusSASRelayReceived, sas: ch.sasString()},
			}, nil
		}
		return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.Unexpected)

	default:
		return nil, nil, zrtperrors.New(ch.Tag, zrtperrors.Unexpected)
	}
}
