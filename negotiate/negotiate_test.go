package negotiate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanikai/gozrtp/wire"
)

func TestWithMandatoryInjectsMissing(t *testing.T) {
	m := WithMandatory(Menu{})
	assert.Contains(t, m.Hash, mandatoryHash)
	assert.Contains(t, m.Cipher, mandatoryCipher)
	assert.Contains(t, m.AuthTag, mandatoryAuthTag)
	assert.Contains(t, m.KeyAgreement, mandatoryKeyAgreement)
	assert.Contains(t, m.SAS, mandatorySAS)
}

func TestWithMandatoryPreservesExistingOrder(t *testing.T) {
	m := WithMandatory(Menu{Hash: []wire.Tag{wire.TagS384}})
	assert.Equal(t, []wire.Tag{wire.TagS384, wire.TagS256}, m.Hash)
}

func TestNegotiatePicksHighestPriorityCommonEntry(t *testing.T) {
	local := WithMandatory(Menu{
		Hash:         []wire.Tag{wire.TagS384, wire.TagS256},
		Cipher:       []wire.Tag{wire.TagAES3, wire.TagAES1},
		AuthTag:      []wire.Tag{wire.TagHS80, wire.TagHS32},
		KeyAgreement: []wire.Tag{wire.TagEC25, wire.TagDH3k},
		SAS:          []wire.Tag{wire.TagB32},
	})
	peer := Menu{
		Hash:         []wire.Tag{wire.TagS256},
		Cipher:       []wire.Tag{wire.TagAES1, wire.TagAES3},
		AuthTag:      []wire.Tag{wire.TagHS32},
		KeyAgreement: []wire.Tag{wire.TagDH3k},
		SAS:          []wire.Tag{wire.TagB32},
	}

	r, err := Negotiate(local, peer)
	require.NoError(t, err)
	assert.Equal(t, wire.TagS256, r.Hash) // only common hash
	assert.Equal(t, wire.TagAES3, r.Cipher) // local prefers AES3, peer has it
	assert.Equal(t, wire.TagDH3k, r.KeyAgreement)
}

func TestNegotiateFailsWithoutCommonAlgorithm(t *testing.T) {
	local := Menu{Hash: []wire.Tag{wire.TagS384}}
	peer := Menu{Hash: []wire.Tag{wire.TagS256}}
	_, err := Negotiate(local, peer)
	assert.Error(t, err)
}

func TestIsSharedSecretMode(t *testing.T) {
	assert.True(t, Result{KeyAgreement: wire.TagMult}.IsSharedSecretMode())
	assert.True(t, Result{KeyAgreement: wire.TagPrsh}.IsSharedSecretMode())
	assert.False(t, Result{KeyAgreement: wire.TagDH3k}.IsSharedSecretMode())
}

func TestUpgradeToMultistream(t *testing.T) {
	r := Result{KeyAgreement: wire.TagDH3k}
	upgraded := UpgradeToMultistream(r, true, true)
	assert.Equal(t, wire.TagMult, upgraded.KeyAgreement)

	notUpgraded := UpgradeToMultistream(r, true, false)
	assert.Equal(t, wire.TagDH3k, notUpgraded.KeyAgreement)
}

func TestHashAndCipherKeyLengths(t *testing.T) {
	assert.Equal(t, 32, HashLength(wire.TagS256))
	assert.Equal(t, 48, HashLength(wire.TagS384))
	assert.Equal(t, 16, CipherKeyLength(wire.TagAES1))
	assert.Equal(t, 32, CipherKeyLength(wire.TagAES3))
	assert.Equal(t, 32, CipherKeyLength(wire.Tag2FS3))
}
