// Package zrtp implements a ZRTP key-agreement engine: the Hello/Commit/
// DHPart/Confirm handshake that lets two RTP endpoints authenticate each
// other and derive SRTP keying material without a PKI, per RFC 6189.
//
// The engine is transport-agnostic and never blocks on I/O. A host embeds
// it by implementing Callbacks, creating a Session with SessionNew, adding
// one Channel per RTP stream with Session.ChannelAdd, and feeding inbound
// packets to Channel.Deliver while calling Channel.Tick on its own
// schedule to drive retransmission.
package zrtp
