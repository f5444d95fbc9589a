package zidcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(8)
	self := [12]byte{1, 2, 3}
	peer := [12]byte{4, 5, 6}

	_, ok, err := store.Load(self, peer)
	require.NoError(t, err)
	assert.False(t, ok)

	entry := Entry{
		SelfZID:    self,
		PeerZID:    peer,
		RS1:        []byte("rs1"),
		LastUpdate: time.Now(),
	}
	require.NoError(t, store.Store(entry))

	got, ok, err := store.Load(self, peer)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entry.RS1, got.RS1)
}

func TestMemoryStoreEvictsLRU(t *testing.T) {
	store := NewMemoryStore(1)
	a := Entry{SelfZID: [12]byte{1}, PeerZID: [12]byte{1}}
	b := Entry{SelfZID: [12]byte{2}, PeerZID: [12]byte{2}}

	require.NoError(t, store.Store(a))
	require.NoError(t, store.Store(b))

	_, ok, err := store.Load(a.SelfZID, a.PeerZID)
	require.NoError(t, err)
	assert.False(t, ok, "oldest entry should have been evicted at capacity 1")

	_, ok, err = store.Load(b.SelfZID, b.PeerZID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStoreDefaultCapacity(t *testing.T) {
	store := NewMemoryStore(0)
	assert.NotNil(t, store)
}
