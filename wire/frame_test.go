package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	zcrypto "github.com/lanikai/gozrtp/crypto"
)

func TestBuildParseFrameRoundTrip(t *testing.T) {
	fields := []byte{1, 2, 3, 4}
	frame, err := buildFrame(MsgHello, fields)
	require.NoError(t, err)

	gotType, gotFields, err := ParseFrame(frame)
	require.NoError(t, err)
	assert.Equal(t, MsgHello, gotType)
	assert.Equal(t, fields, gotFields)
}

func TestBuildFrameRequiresWordAlignment(t *testing.T) {
	_, err := buildFrame(MsgHello, []byte{1, 2, 3})
	assert.Error(t, err)
}

func TestParseFrameRejectsBadPreamble(t *testing.T) {
	frame, err := buildFrame(MsgHello, nil)
	require.NoError(t, err)
	frame[0] ^= 0xff
	_, _, err = ParseFrame(frame)
	assert.Error(t, err)
}

func TestBuildWithMACRoundTrip(t *testing.T) {
	mac := zcrypto.NewHMACSHA256()
	key := []byte("a shared key material")
	fields := []byte{9, 8, 7}

	msg, err := buildWithMAC(MsgCommit, fields, mac, key)
	require.NoError(t, err)

	gotType, parsedFields, err := ParseFrame(msg)
	require.NoError(t, err)
	assert.Equal(t, MsgCommit, gotType)

	body, _, err := parseWithMAC(parsedFields)
	require.NoError(t, err)
	assert.Equal(t, fields, body)

	assert.True(t, VerifyMAC(MsgCommit, parsedFields, mac, key))
	assert.False(t, VerifyMAC(MsgCommit, parsedFields, mac, []byte("wrong key")))
}
