package crypto

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiniteFieldDHAgreement(t *testing.T) {
	alice := NewDH3072()
	bob := NewDH3072()

	alicePriv, alicePub, err := alice.GenerateKeyPair(rand.Reader)
	require.NoError(t, err)
	bobPriv, bobPub, err := bob.GenerateKeyPair(rand.Reader)
	require.NoError(t, err)

	aliceShared, err := alice.SharedSecret(alicePriv, bobPub)
	require.NoError(t, err)
	bobShared, err := bob.SharedSecret(bobPriv, alicePub)
	require.NoError(t, err)

	assert.Equal(t, aliceShared, bobShared)
	assert.Len(t, alicePub, alice.PublicValueLength())
}

func TestFiniteFieldDHRejectsWeakPublicValues(t *testing.T) {
	dh := NewDH3072()
	one := make([]byte, dh.byteLen)
	one[len(one)-1] = 1
	assert.True(t, dh.IsWeak(one))

	pMinus1 := dh.p.Bytes() // p itself is not p-1, just exercising a non-weak value
	assert.False(t, dh.IsWeak(pMinus1))
}

func TestDH4096HasLargerPublicValue(t *testing.T) {
	dh3k := NewDH3072()
	dh4k := NewDH4096()
	assert.Greater(t, dh4k.PublicValueLength(), dh3k.PublicValueLength())
}

func TestECDH25519Agreement(t *testing.T) {
	var alice, bob ECDH25519

	alicePriv, alicePub, err := alice.GenerateKeyPair(rand.Reader)
	require.NoError(t, err)
	bobPriv, bobPub, err := bob.GenerateKeyPair(rand.Reader)
	require.NoError(t, err)

	aliceShared, err := alice.SharedSecret(alicePriv, bobPub)
	require.NoError(t, err)
	bobShared, err := bob.SharedSecret(bobPriv, alicePub)
	require.NoError(t, err)

	assert.Equal(t, aliceShared, bobShared)
}

func TestECDH25519RejectsLowOrderPoint(t *testing.T) {
	var ecdh ECDH25519
	zero := make([]byte, 32)
	assert.True(t, ecdh.IsWeak(zero))
}
