package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	zcrypto "github.com/lanikai/gozrtp/crypto"
)

func TestConfirmRoundTrip(t *testing.T) {
	c := &Confirm{V: true, A: true, CacheExpiration: 0xffffffff}
	for i := range c.H0 {
		c.H0[i] = byte(i)
	}

	cipher := zcrypto.NewAES128Cipher()
	mac := zcrypto.NewHMACSHA256()
	zrtpKey := make([]byte, cipher.KeySize())
	mackey := make([]byte, 32)
	iv := make([]byte, cipher.BlockSize())
	for i := range iv {
		iv[i] = byte(i)
	}

	msg, err := BuildConfirm(true, c, cipher, mac, zrtpKey, mackey, iv)
	require.NoError(t, err)

	msgType, fields, err := ParseFrame(msg)
	require.NoError(t, err)
	assert.Equal(t, MsgConfirm1, msgType)

	got, err := ParseConfirm(fields, cipher, mac, zrtpKey, mackey)
	require.NoError(t, err)
	assert.Equal(t, c.H0, got.H0)
	assert.True(t, got.V)
	assert.True(t, got.A)
	assert.False(t, got.E)
	assert.Equal(t, c.CacheExpiration, got.CacheExpiration)
}

func TestConfirmRejectsBadMAC(t *testing.T) {
	c := &Confirm{}
	cipher := zcrypto.NewAES128Cipher()
	mac := zcrypto.NewHMACSHA256()
	zrtpKey := make([]byte, cipher.KeySize())
	mackey := make([]byte, 32)
	iv := make([]byte, cipher.BlockSize())

	msg, err := BuildConfirm(false, c, cipher, mac, zrtpKey, mackey, iv)
	require.NoError(t, err)

	_, fields, err := ParseFrame(msg)
	require.NoError(t, err)

	wrongKey := make([]byte, 32)
	wrongKey[0] = 1
	_, err = ParseConfirm(fields, cipher, mac, zrtpKey, wrongKey)
	assert.Error(t, err)
}
