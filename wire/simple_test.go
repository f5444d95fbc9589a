package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	zcrypto "github.com/lanikai/gozrtp/crypto"
)

func TestBuildEmptyRoundTrip(t *testing.T) {
	for _, mt := range []MessageType{MsgHelloACK, MsgConf2ACK, MsgErrorACK, MsgClearACK} {
		msg, err := BuildEmpty(mt)
		require.NoError(t, err)
		gotType, fields, err := ParseFrame(msg)
		require.NoError(t, err)
		assert.Equal(t, mt, gotType)
		assert.NoError(t, ParseEmpty(fields))
	}
}

func TestErrorMessageRoundTrip(t *testing.T) {
	e := &ErrorMessage{Code: 0x10}
	msg, err := BuildError(e)
	require.NoError(t, err)
	_, fields, err := ParseFrame(msg)
	require.NoError(t, err)
	got, err := ParseError(fields)
	require.NoError(t, err)
	assert.Equal(t, e.Code, got.Code)
}

func TestGoClearRoundTrip(t *testing.T) {
	mac := zcrypto.NewHMACSHA256()
	key := make([]byte, 32)
	msg, err := BuildGoClear(mac, key)
	require.NoError(t, err)
	_, fields, err := ParseFrame(msg)
	require.NoError(t, err)
	_, _, err = ParseGoClear(fields)
	assert.NoError(t, err)
}

func TestPingRoundTrip(t *testing.T) {
	p := &Ping{Version: [4]byte{'1', '.', '1', '0'}}
	for i := range p.EndpointHash {
		p.EndpointHash[i] = byte(i)
	}
	msg, err := BuildPing(p)
	require.NoError(t, err)
	_, fields, err := ParseFrame(msg)
	require.NoError(t, err)
	got, err := ParsePing(fields)
	require.NoError(t, err)
	assert.Equal(t, p.EndpointHash, got.EndpointHash)
}

func TestPingACKRoundTrip(t *testing.T) {
	p := &PingACK{Version: [4]byte{'1', '.', '1', '0'}, PeerSSRC: 12345}
	msg, err := BuildPingACK(p)
	require.NoError(t, err)
	_, fields, err := ParseFrame(msg)
	require.NoError(t, err)
	got, err := ParsePingACK(fields)
	require.NoError(t, err)
	assert.Equal(t, p.PeerSSRC, got.PeerSSRC)
}
