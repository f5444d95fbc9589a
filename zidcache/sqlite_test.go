package zidcache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zidcache.db")
	store, err := OpenSQLiteStore(path)
	require.NoError(t, err)

	self := [12]byte{0xaa, 0xbb}
	peer := [12]byte{0xcc, 0xdd}

	_, ok, err := store.Load(self, peer)
	require.NoError(t, err)
	assert.False(t, ok)

	entry := Entry{
		SelfZID:            self,
		PeerZID:            peer,
		RS1:                []byte("retained-secret-1"),
		AuxSecret:          []byte("aux"),
		PreviouslyVerified: true,
		LastUpdate:         time.Now().Truncate(time.Second),
	}
	require.NoError(t, store.Store(entry))

	got, ok, err := store.Load(self, peer)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entry.RS1, got.RS1)
	assert.Equal(t, entry.AuxSecret, got.AuxSecret)
	assert.True(t, got.PreviouslyVerified)
}

func TestSQLiteStoreUpdateOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zidcache.db")
	store, err := OpenSQLiteStore(path)
	require.NoError(t, err)

	self := [12]byte{1}
	peer := [12]byte{2}
	require.NoError(t, store.Store(Entry{SelfZID: self, PeerZID: peer, RS1: []byte("old")}))
	require.NoError(t, store.Store(Entry{SelfZID: self, PeerZID: peer, RS1: []byte("new"), RS2: []byte("old")}))

	got, ok, err := store.Load(self, peer)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("new"), got.RS1)
	assert.Equal(t, []byte("old"), got.RS2)
}

func TestHexZIDRoundTrip(t *testing.T) {
	var zid [12]byte
	for i := range zid {
		zid[i] = byte(i * 17)
	}
	s := hexZID(zid)
	assert.Len(t, s, 24)

	got, err := unhexZID(s)
	require.NoError(t, err)
	assert.Equal(t, zid, got)
}

func TestUnhexZIDRejectsMalformed(t *testing.T) {
	_, err := unhexZID("not-hex")
	assert.Error(t, err)
	_, err = unhexZID("deadbeef")
	assert.Error(t, err) // too short
}
