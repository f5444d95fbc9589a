package keyschedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	zcrypto "github.com/lanikai/gozrtp/crypto"
)

func TestKDFContextLayout(t *testing.T) {
	var zidI, zidR [12]byte
	for i := range zidI {
		zidI[i] = byte(i)
	}
	for i := range zidR {
		zidR[i] = byte(0x80 + i)
	}
	totalHash := []byte{1, 2, 3, 4}

	ctx := KDFContext(zidI, zidR, totalHash)
	assert.Equal(t, zidI[:], ctx[:12])
	assert.Equal(t, zidR[:], ctx[12:24])
	assert.Equal(t, totalHash, ctx[24:])
}

func TestS0FromDHDeterministic(t *testing.T) {
	hasher := zcrypto.SHA256Hasher{}
	dhResult := []byte("shared-secret")
	ctx := []byte("context")
	rs1 := []byte("retained-secret-1")

	a := S0FromDH(hasher, dhResult, ctx, rs1, nil, nil)
	b := S0FromDH(hasher, dhResult, ctx, rs1, nil, nil)
	assert.Equal(t, a, b)
	assert.Len(t, a, hasher.Size())
}

func TestS0FromDHSensitiveToSecrets(t *testing.T) {
	hasher := zcrypto.SHA256Hasher{}
	dhResult := []byte("shared-secret")
	ctx := []byte("context")

	withRS1 := S0FromDH(hasher, dhResult, ctx, []byte("rs1"), nil, nil)
	withoutRS1 := S0FromDH(hasher, dhResult, ctx, nil, nil, nil)
	assert.NotEqual(t, withRS1, withoutRS1)
}

func TestDeriveChannelKeysDistinctOutputs(t *testing.T) {
	mac := zcrypto.NewHMACSHA256()
	s0 := []byte("s0-material-32-bytes-long-000000")
	ctx := []byte("ctx")

	keys := DeriveChannelKeys(mac, s0, ctx, 32, 16)
	assert.Len(t, keys.MacKeyInitiator, 32)
	assert.Len(t, keys.ZRTPKeyInitiator, 16)
	assert.NotEqual(t, keys.MacKeyInitiator, keys.MacKeyResponder)
	assert.NotEqual(t, keys.ZRTPKeyInitiator, keys.ZRTPKeyResponder)
}

func TestDeriveSRTPSecretsSaltLength(t *testing.T) {
	mac := zcrypto.NewHMACSHA256()
	s0 := []byte("s0-material")
	ctx := []byte("ctx")

	secrets := DeriveSRTPSecrets(mac, s0, ctx, 16)
	assert.Len(t, secrets.KeyInitiator, 16)
	assert.Len(t, secrets.SaltInitiator, srtpSaltLengthBytes)
	assert.NotEqual(t, secrets.KeyInitiator, secrets.KeyResponder)
}

func TestS0FromPresharedDeterministicAndDistinctFromMultistream(t *testing.T) {
	mac := zcrypto.NewHMACSHA256()
	ctx := []byte("context")
	presharedKey := []byte("retained-secret-1")

	a := S0FromPreshared(mac, presharedKey, ctx, 32)
	b := S0FromPreshared(mac, presharedKey, ctx, 32)
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)

	msk := S0FromMultistream(mac, presharedKey, ctx, 32)
	assert.NotEqual(t, a, msk, "preshared and multistream s0 must use distinct KDF labels")
}

func TestDeriveRetainedSecretLength(t *testing.T) {
	mac := zcrypto.NewHMACSHA256()
	rs1 := DeriveRetainedSecret(mac, []byte("s0"), []byte("ctx"))
	assert.Len(t, rs1, 32)
}
