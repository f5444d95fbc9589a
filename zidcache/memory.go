package zidcache

import (
	"sync"

	"github.com/golang/groupcache/lru"
)

// DefaultMemoryCapacity bounds the number of peer entries an in-memory
// store retains before evicting least-recently-used rows.
const DefaultMemoryCapacity = 1024

type memoryKey [24]byte

func keyFor(selfZID, peerZID [12]byte) memoryKey {
	var k memoryKey
	copy(k[:12], selfZID[:])
	copy(k[12:], peerZID[:])
	return k
}

// MemoryStore is a process-local Store backed by an LRU cache, suitable for
// short-lived hosts or tests that don't need secrets to survive a restart.
type MemoryStore struct {
	mu    sync.Mutex
	cache *lru.Cache
}

// NewMemoryStore creates a MemoryStore holding up to capacity entries.
// capacity<=0 uses DefaultMemoryCapacity.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryStore{cache: lru.New(capacity)}
}

func (s *MemoryStore) Load(selfZID, peerZID [12]byte) (Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.cache.Get(keyFor(selfZID, peerZID))
	if !ok {
		return Entry{}, false, nil
	}
	return v.(Entry), true, nil
}

func (s *MemoryStore) Store(entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Add(keyFor(entry.SelfZID, entry.PeerZID), entry)
	return nil
}
