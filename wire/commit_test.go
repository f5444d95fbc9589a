package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	zcrypto "github.com/lanikai/gozrtp/crypto"
)

func TestCommitRoundTripDH(t *testing.T) {
	c := &Commit{
		Hash:         TagS256,
		Cipher:       TagAES1,
		AuthTag:      TagHS32,
		KeyAgreement: TagDH3k,
		SAS:          TagB32,
	}
	for i := range c.HVI {
		c.HVI[i] = byte(i)
	}
	for i := range c.ZID {
		c.ZID[i] = byte(0x10 + i)
	}

	mac := zcrypto.NewHMACSHA256()
	key := make([]byte, 32)
	msg, err := BuildCommit(c, mac, key)
	require.NoError(t, err)

	_, fields, err := ParseFrame(msg)
	require.NoError(t, err)
	got, _, err := ParseCommit(fields)
	require.NoError(t, err)

	assert.Equal(t, c.ZID, got.ZID)
	assert.Equal(t, c.HVI, got.HVI)
	assert.Equal(t, c.KeyAgreement, got.KeyAgreement)
	assert.False(t, got.IsSharedSecretMode())
	assert.Nil(t, got.KEMPublicValue)
}

func TestCommitRoundTripMultistream(t *testing.T) {
	c := &Commit{
		Hash:         TagS256,
		Cipher:       TagAES1,
		AuthTag:      TagHS32,
		KeyAgreement: TagMult,
		SAS:          TagB32,
	}
	for i := range c.Nonce {
		c.Nonce[i] = byte(0x55)
	}

	mac := zcrypto.NewHMACSHA256()
	msg, err := BuildCommit(c, mac, make([]byte, 32))
	require.NoError(t, err)

	_, fields, err := ParseFrame(msg)
	require.NoError(t, err)
	got, _, err := ParseCommit(fields)
	require.NoError(t, err)

	assert.True(t, got.IsSharedSecretMode())
	assert.Equal(t, c.Nonce, got.Nonce)
	assert.Nil(t, got.KeyID)
}

func TestCommitRoundTripMultistreamWithKeyID(t *testing.T) {
	c := &Commit{
		Hash:         TagS256,
		Cipher:       TagAES1,
		AuthTag:      TagHS32,
		KeyAgreement: TagPrsh,
		SAS:          TagB32,
		KeyID:        []byte{1, 2, 3, 4, 5, 6, 7, 8},
	}

	mac := zcrypto.NewHMACSHA256()
	msg, err := BuildCommit(c, mac, make([]byte, 32))
	require.NoError(t, err)

	_, fields, err := ParseFrame(msg)
	require.NoError(t, err)
	got, _, err := ParseCommit(fields)
	require.NoError(t, err)

	assert.Equal(t, c.KeyID, got.KeyID)
}
