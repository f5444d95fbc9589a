package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	zcrypto "github.com/lanikai/gozrtp/crypto"
)

func sampleHello() *Hello {
	h := &Hello{
		Version:      [4]byte{'1', '.', '1', '0'},
		MITM:         true,
		Hash:         []Tag{TagS256, TagS384},
		Cipher:       []Tag{TagAES1},
		AuthTag:      []Tag{TagHS32, TagHS80},
		KeyAgreement: []Tag{TagDH3k, TagEC25},
		SAS:          []Tag{TagB32},
	}
	copy(h.ClientID[:], "gozrtp/test     ")
	for i := range h.H3 {
		h.H3[i] = byte(i)
	}
	for i := range h.ZID {
		h.ZID[i] = byte(0xa0 + i)
	}
	return h
}

func TestHelloRoundTrip(t *testing.T) {
	mac := zcrypto.NewHMACSHA256()
	key := make([]byte, 32)
	h := sampleHello()

	msg, err := BuildHello(h, mac, key)
	require.NoError(t, err)

	msgType, fields, err := ParseFrame(msg)
	require.NoError(t, err)
	assert.Equal(t, MsgHello, msgType)

	got, _, err := ParseHello(fields)
	require.NoError(t, err)
	assert.Equal(t, h.Version, got.Version)
	assert.Equal(t, h.ClientID, got.ClientID)
	assert.Equal(t, h.H3, got.H3)
	assert.Equal(t, h.ZID, got.ZID)
	assert.True(t, got.MITM)
	assert.False(t, got.Signed)
	assert.Equal(t, h.Hash, got.Hash)
	assert.Equal(t, h.Cipher, got.Cipher)
	assert.Equal(t, h.AuthTag, got.AuthTag)
	assert.Equal(t, h.KeyAgreement, got.KeyAgreement)
	assert.Equal(t, h.SAS, got.SAS)
}

func TestHelloRejectsTooManyAlgorithms(t *testing.T) {
	h := sampleHello()
	h.Hash = make([]Tag, maxAlgosPerCategory+1)
	_, err := BuildHello(h, zcrypto.NewHMACSHA256(), make([]byte, 32))
	assert.Error(t, err)
}

func TestParseHelloRejectsTruncated(t *testing.T) {
	mac := zcrypto.NewHMACSHA256()
	msg, err := BuildHello(sampleHello(), mac, make([]byte, 32))
	require.NoError(t, err)
	_, fields, err := ParseFrame(msg)
	require.NoError(t, err)

	_, _, err = ParseHello(fields[:len(fields)-20])
	assert.Error(t, err)
}
