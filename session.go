package zrtp

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"

	"github.com/lanikai/gozrtp/internal/logging"
	"github.com/lanikai/gozrtp/negotiate"
	"github.com/lanikai/gozrtp/zidcache"
	"github.com/lanikai/gozrtp/zrtperrors"
)

// Session owns one endpoint's ZID, peer ZID, algorithm menus, and the
// channels multiplexed over it. Channel 0 performs the full DH exchange;
// later channels use multistream mode keyed from the session's ZRTPSess.
type Session struct {
	selfZID ZID
	haveZID bool
	peerZID ZID
	havePeerZID bool

	rng io.Reader

	menu     negotiate.Menu
	clientID [16]byte
	mtu      int

	enableGoClear bool

	cache      zidcache.Store
	cacheMutex sync.Locker

	callbacks Callbacks

	zrtpSess []byte
	isSecure bool

	channelMu sync.Mutex
	channels  map[string]*Channel

	log *logging.Logger
}

// SessionNew creates a session bound to cache for persisted secrets, using
// mutex to guard the cache handle (a fresh sync.Mutex if nil) and opts for
// ZID/RNG/MTU/menu overrides, per spec.md §6 `session_new`.
func SessionNew(cache zidcache.Store, mutex sync.Locker, callbacks Callbacks, opts ...Option) (*Session, error) {
	s := &Session{
		rng:       rand.Reader,
		menu:      defaultMenu(),
		mtu:       DefaultMTU,
		cache:     cache,
		callbacks: callbacks,
		channels:  make(map[string]*Channel),
		log:       logging.DefaultLogger.WithTag("zrtp"),
	}
	if mutex == nil {
		mutex = &sync.Mutex{}
	}
	s.cacheMutex = mutex

	for _, opt := range opts {
		opt(s)
	}
	s.menu = negotiate.WithMandatory(s.menu)

	if !s.haveZID {
		zid, err := NewZID(s.rng)
		if err != nil {
			return nil, zrtperrors.Wrap("", zrtperrors.CryptoFailure, err)
		}
		s.selfZID = zid
		s.haveZID = true
	}
	return s, nil
}

// ChannelAdd allocates a new channel identified by tag. The first channel
// added becomes the main (DH) channel; subsequent channels default to
// multistream once the session is secure. Channel 0 must complete before
// later channels are started, per spec.md §3.
func (s *Session) ChannelAdd(tag string) (*Channel, error) {
	s.channelMu.Lock()
	defer s.channelMu.Unlock()

	if len(s.channels) >= MaxChannels {
		return nil, zrtperrors.New(tag, zrtperrors.InvalidContext)
	}
	if _, exists := s.channels[tag]; exists {
		return nil, fmt.Errorf("zrtp: channel %q already exists", tag)
	}

	isMain := len(s.channels) == 0
	ch := NewChannel(tag, isMain)
	s.channels[tag] = ch
	return ch, nil
}

// Channel looks up a previously added channel by tag.
func (s *Session) Channel(tag string) (*Channel, bool) {
	s.channelMu.Lock()
	defer s.channelMu.Unlock()
	ch, ok := s.channels[tag]
	return ch, ok
}

// loadCachedSecrets fetches the peer's cached-secret quadruple for this
// session's (self, peer) ZID pair.
func (s *Session) loadCachedSecrets() (zidcache.Entry, bool) {
	if s.cache == nil {
		return zidcache.Entry{}, false
	}
	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()
	entry, ok, err := s.cache.Load(s.selfZID, s.peerZID)
	if err != nil {
		s.log.Warn("cache load failed: %v", err)
		return zidcache.Entry{}, false
	}
	if !ok {
		return zidcache.Entry{}, false
	}
	return entry, true
}

// storeCachedSecrets persists an updated cache row under the session mutex.
func (s *Session) storeCachedSecrets(entry zidcache.Entry) error {
	if s.cache == nil {
		return nil
	}
	entry.SelfZID = s.selfZID
	entry.PeerZID = s.peerZID
	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()
	if err := s.cache.Store(entry); err != nil {
		s.log.Warn("cache store failed: %v", err)
		return err
	}
	return nil
}
