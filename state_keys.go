package zrtp

import (
	"github.com/lanikai/gozrtp/crypto"
	"github.com/lanikai/gozrtp/keyschedule"
	"github.com/lanikai/gozrtp/wire"
	"github.com/lanikai/gozrtp/zrtperrors"
)

// finishDHKeyAgreement computes total_hash, KDF_context, s0, and every key
// derived from it, once both DHPart messages (or the multistream
// equivalent) are known, per spec.md §4.7.
func finishDHKeyAgreement(ch *Channel, s *Session, dhResult []byte, selfDHPart, peerDHPart []byte) error {
	hasher := ch.hasher(s)
	mac := ch.mac(s)

	var initiatorHello, responderHello, dhPart1, dhPart2 []byte
	var zidInitiator, zidResponder [12]byte
	if ch.role == RoleInitiator {
		initiatorHello, responderHello = ch.stored.selfHello, ch.stored.peerHello
		dhPart1, dhPart2 = peerDHPart, selfDHPart
		zidInitiator, zidResponder = s.selfZID, s.peerZID
	} else {
		initiatorHello, responderHello = ch.stored.peerHello, ch.stored.selfHello
		dhPart1, dhPart2 = selfDHPart, peerDHPart
		zidInitiator, zidResponder = s.peerZID, s.selfZID
	}
	_ = initiatorHello

	totalHash := keyschedule.TotalHash(hasher, responderHello, ch.stored.selfCommitOrPeer(ch), dhPart1, dhPart2)
	kdfContext := keyschedule.KDFContext(zidInitiator, zidResponder, totalHash)

	s1 := ch.heldCache.RS1
	if s1 == nil {
		s1 = ch.heldCache.RS2
	}
	s0 := keyschedule.S0FromDH(hasher, dhResult, kdfContext, s1, ch.heldCache.AuxSecret, ch.heldCache.PBXSecret)

	ch.s0 = s0
	ch.kdfContext = kdfContext
	ch.derived = keyschedule.DeriveChannelKeys(mac, s0, kdfContext, ch.hashLength, ch.cipherKeyLen)
	if ch.isMainChannel {
		ch.zrtpSess = keyschedule.DeriveZRTPSess(mac, s0, kdfContext, ch.hashLength)
		s.zrtpSess = ch.zrtpSess
		s.isSecure = false // becomes true once this channel reaches secure
	}
	ch.srtp = keyschedule.DeriveSRTPSecrets(mac, s0, kdfContext, ch.cipherKeyLen)
	ch.exportedKey = keyschedule.ExportedKey(mac, s0, kdfContext, ch.hashLength)
	sashash := keyschedule.SASHash(mac, s0, kdfContext)
	ch.sasvalue = keyschedule.SASValue(sashash)
	return nil
}

// finishMultistreamKeyAgreement derives s0 directly from the session's
// ZRTPSess, per spec.md §4.7's multistream form.
func finishMultistreamKeyAgreement(ch *Channel, s *Session) error {
	hasher := ch.hasher(s)
	mac := ch.mac(s)

	var zidInitiator, zidResponder [12]byte
	if ch.role == RoleInitiator {
		zidInitiator, zidResponder = s.selfZID, s.peerZID
	} else {
		zidInitiator, zidResponder = s.peerZID, s.selfZID
	}

	var responderHello, commit []byte
	if ch.role == RoleInitiator {
		responderHello = ch.stored.peerHello
	} else {
		responderHello = ch.stored.selfHello
	}
	commit = ch.stored.selfCommitOrPeer(ch)

	totalHash := keyschedule.TotalHash(hasher, responderHello, commit, nil, nil)
	kdfContext := keyschedule.KDFContext(zidInitiator, zidResponder, totalHash)

	s0 := keyschedule.S0FromMultistream(mac, s.zrtpSess, kdfContext, ch.hashLength)
	ch.s0 = s0
	ch.kdfContext = kdfContext
	ch.derived = keyschedule.DeriveChannelKeys(mac, s0, kdfContext, ch.hashLength, ch.cipherKeyLen)
	ch.srtp = keyschedule.DeriveSRTPSecrets(mac, s0, kdfContext, ch.cipherKeyLen)
	ch.exportedKey = keyschedule.ExportedKey(mac, s0, kdfContext, ch.hashLength)
	sashash := keyschedule.SASHash(mac, s0, kdfContext)
	ch.sasvalue = keyschedule.SASValue(sashash)
	return nil
}

// finishPresharedKeyAgreement derives s0 from the cached retained secret
// rather than a DH result or ZRTPSess, per spec.md §4.7's preshared form.
// It fails with a CryptoFailure *zrtperrors.Error if this side holds no
// retained secret to key the derivation with, since preshared mode cannot
// fall back to DH.
func finishPresharedKeyAgreement(ch *Channel, s *Session) error {
	presharedKey := ch.heldCache.RS1
	if presharedKey == nil {
		presharedKey = ch.heldCache.RS2
	}
	if presharedKey == nil {
		return zrtperrors.New(ch.Tag, zrtperrors.CryptoFailure)
	}

	hasher := ch.hasher(s)
	mac := ch.mac(s)

	var zidInitiator, zidResponder [12]byte
	if ch.role == RoleInitiator {
		zidInitiator, zidResponder = s.selfZID, s.peerZID
	} else {
		zidInitiator, zidResponder = s.peerZID, s.selfZID
	}

	var responderHello []byte
	if ch.role == RoleInitiator {
		responderHello = ch.stored.peerHello
	} else {
		responderHello = ch.stored.selfHello
	}
	commit := ch.stored.selfCommitOrPeer(ch)

	totalHash := keyschedule.TotalHash(hasher, responderHello, commit, nil, nil)
	kdfContext := keyschedule.KDFContext(zidInitiator, zidResponder, totalHash)

	s0 := keyschedule.S0FromPreshared(mac, presharedKey, kdfContext, ch.hashLength)
	ch.s0 = s0
	ch.kdfContext = kdfContext
	ch.derived = keyschedule.DeriveChannelKeys(mac, s0, kdfContext, ch.hashLength, ch.cipherKeyLen)
	ch.srtp = keyschedule.DeriveSRTPSecrets(mac, s0, kdfContext, ch.cipherKeyLen)
	ch.exportedKey = keyschedule.ExportedKey(mac, s0, kdfContext, ch.hashLength)
	sashash := keyschedule.SASHash(mac, s0, kdfContext)
	ch.sasvalue = keyschedule.SASValue(sashash)
	return nil
}

// sasString renders the channel's sasvalue per the negotiated SAS algorithm.
func (ch *Channel) sasString() string {
	return keyschedule.RenderSAS(ch.negotiated.SAS, ch.sasvalue)
}

func (m *storedMessages) selfCommitOrPeer(ch *Channel) []byte {
	if ch.role == RoleInitiator {
		return m.selfCommit
	}
	return m.peerCommit
}

func keyAgreementFor(tag wire.Tag) crypto.KeyAgreement {
	return crypto.KeyAgreementFor(crypto.AlgoTag(tag))
}

func cipherFor(tag wire.Tag) crypto.BlockCipher {
	return crypto.CipherFor(crypto.AlgoTag(tag))
}
