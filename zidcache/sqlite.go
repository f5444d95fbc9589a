package zidcache

import (
	stderrors "errors"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// row is the gorm model backing a SQLiteStore, keyed by the (self, peer)
// ZID pair hex-encoded so it can serve as a SQLite primary key.
type row struct {
	SelfZIDHex         string `gorm:"primaryKey"`
	PeerZIDHex         string `gorm:"primaryKey"`
	RS1                []byte
	RS2                []byte
	AuxSecret          []byte
	PBXSecret          []byte
	PreviouslyVerified bool
	LastUpdate         time.Time
}

func (row) TableName() string { return "zid_cache_entries" }

func hexZID(zid [12]byte) string {
	const hextable = "0123456789abcdef"
	buf := make([]byte, 24)
	for i, b := range zid {
		buf[2*i] = hextable[b>>4]
		buf[2*i+1] = hextable[b&0x0f]
	}
	return string(buf)
}

func unhexZID(s string) ([12]byte, error) {
	var zid [12]byte
	if len(s) != 24 {
		return zid, errors.Errorf("zidcache: malformed zid hex %q", s)
	}
	for i := 0; i < 12; i++ {
		hi, err := hexNibble(s[2*i])
		if err != nil {
			return zid, err
		}
		lo, err := hexNibble(s[2*i+1])
		if err != nil {
			return zid, err
		}
		zid[i] = hi<<4 | lo
	}
	return zid, nil
}

func hexNibble(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	default:
		return 0, errors.Errorf("zidcache: invalid hex digit %q", c)
	}
}

// SQLiteStore is a durable Store backed by gorm and a SQLite file, for hosts
// that need cached secrets to survive a restart.
type SQLiteStore struct {
	db *gorm.DB
}

// OpenSQLiteStore opens (creating if needed) a SQLite database at path and
// migrates its schema.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "zidcache: opening sqlite store")
	}
	if err := db.AutoMigrate(&row{}); err != nil {
		return nil, errors.Wrap(err, "zidcache: migrating sqlite schema")
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(selfZID, peerZID [12]byte) (Entry, bool, error) {
	var r row
	err := s.db.Where("self_zid_hex = ? AND peer_zid_hex = ?", hexZID(selfZID), hexZID(peerZID)).First(&r).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, errors.Wrap(err, "zidcache: loading entry")
	}

	self, err := unhexZID(r.SelfZIDHex)
	if err != nil {
		return Entry{}, false, err
	}
	peer, err := unhexZID(r.PeerZIDHex)
	if err != nil {
		return Entry{}, false, err
	}
	return Entry{
		SelfZID:            self,
		PeerZID:            peer,
		RS1:                r.RS1,
		RS2:                r.RS2,
		AuxSecret:          r.AuxSecret,
		PBXSecret:          r.PBXSecret,
		PreviouslyVerified: r.PreviouslyVerified,
		LastUpdate:         r.LastUpdate,
	}, true, nil
}

func (s *SQLiteStore) Store(entry Entry) error {
	r := row{
		SelfZIDHex:         hexZID(entry.SelfZID),
		PeerZIDHex:         hexZID(entry.PeerZID),
		RS1:                entry.RS1,
		RS2:                entry.RS2,
		AuxSecret:          entry.AuxSecret,
		PBXSecret:          entry.PBXSecret,
		PreviouslyVerified: entry.PreviouslyVerified,
		LastUpdate:         entry.LastUpdate,
	}
	err := s.db.Save(&r).Error
	return errors.Wrap(err, "zidcache: storing entry")
}
