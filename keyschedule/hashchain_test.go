package keyschedule

import (
	"crypto/rand"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHashChainConsistency(t *testing.T) {
	c, err := NewHashChain(rand.Reader)
	require.NoError(t, err)

	assert.Equal(t, sha256.Sum256(c.H0[:]), c.H1)
	assert.Equal(t, sha256.Sum256(c.H1[:]), c.H2)
	assert.Equal(t, sha256.Sum256(c.H2[:]), c.H3)
}

func TestPeerChainRevealInOrder(t *testing.T) {
	self, err := NewHashChain(rand.Reader)
	require.NoError(t, err)

	var peer PeerChain
	peer.RevealH3(self.H3)

	require.NoError(t, peer.Reveal(2, self.H2))
	require.NoError(t, peer.Reveal(1, self.H1))
	require.NoError(t, peer.Reveal(0, self.H0))
	assert.Equal(t, self.H0, peer.H0)
}

func TestPeerChainRejectsWrongImage(t *testing.T) {
	self, err := NewHashChain(rand.Reader)
	require.NoError(t, err)
	other, err := NewHashChain(rand.Reader)
	require.NoError(t, err)

	var peer PeerChain
	peer.RevealH3(self.H3)

	err = peer.Reveal(2, other.H2)
	assert.Error(t, err)
}

// TestPeerChainSkipsMissingCommitStep exercises a responder's DHPart1,
// which reveals H1 with no Commit (and so no H2) ever having been sent.
func TestPeerChainSkipsMissingCommitStep(t *testing.T) {
	self, err := NewHashChain(rand.Reader)
	require.NoError(t, err)

	var peer PeerChain
	peer.RevealH3(self.H3)
	require.NoError(t, peer.Reveal(1, self.H1))
	assert.Equal(t, self.H1, peer.H1)

	require.NoError(t, peer.Reveal(0, self.H0))
	assert.Equal(t, self.H0, peer.H0)
}

// TestPeerChainSkipsBothMissingSteps exercises shared-secret mode, where
// Confirm's H0 is revealed straight from a Commit's H2 with no DHPart (and
// so no H1) ever having been sent.
func TestPeerChainSkipsBothMissingSteps(t *testing.T) {
	self, err := NewHashChain(rand.Reader)
	require.NoError(t, err)

	var peer PeerChain
	peer.RevealH3(self.H3)
	require.NoError(t, peer.Reveal(2, self.H2))
	require.NoError(t, peer.Reveal(0, self.H0))
	assert.Equal(t, self.H0, peer.H0)
}

func TestPeerChainRejectsUnrelatedSkipAhead(t *testing.T) {
	self, err := NewHashChain(rand.Reader)
	require.NoError(t, err)
	other, err := NewHashChain(rand.Reader)
	require.NoError(t, err)

	var peer PeerChain
	peer.RevealH3(self.H3)
	// A genuinely unrelated H1 must not hash forward to self.H3.
	err = peer.Reveal(1, other.H1)
	assert.Error(t, err)
}
