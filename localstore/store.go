// Package localstore persists named slots, each holding one JSON document.
// It is the console's local-storage equivalent: the auth session and the
// cached taxonomy envelope each live in one slot with a single writer path.
package localstore

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"sixgo.GO/config"
)

// Store reads and writes raw slot contents. A missing or unreadable slot is
// a miss, never an error.
type Store interface {
	Get(name string) ([]byte, bool)
	Set(name string, data []byte) error
	Delete(name string) error
}

// Slot is the single table backing the SQLite store.
type Slot struct {
	Name      string `gorm:"primaryKey;size:64"`
	Data      string
	UpdatedAt time.Time
}

// SQLiteStore keeps slots in a local SQLite file.
type SQLiteStore struct {
	db *gorm.DB
}

// Open opens (or creates) the slot database at path. Use ":memory:" for
// tests.
func Open(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Slot{}); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(name string) ([]byte, bool) {
	var slot Slot
	err := s.db.First(&slot, "name = ?", name).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("localstore: read slot %s: %v", name, err)
		}
		return nil, false
	}
	return []byte(slot.Data), true
}

func (s *SQLiteStore) Set(name string, data []byte) error {
	slot := Slot{Name: name, Data: string(data), UpdatedAt: time.Now()}
	return s.db.Save(&slot).Error
}

func (s *SQLiteStore) Delete(name string) error {
	return s.db.Delete(&Slot{}, "name = ?", name).Error
}

// RedisStore keeps slots in Redis, for consoles sharing state across
// instances.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: "6ixgo_cs:slot:"}
}

func (s *RedisStore) Get(name string) ([]byte, bool) {
	data, err := s.rdb.Get(config.RedisCtx(), s.prefix+name).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("localstore: redis read slot %s: %v", name, err)
		}
		return nil, false
	}
	return data, true
}

func (s *RedisStore) Set(name string, data []byte) error {
	return s.rdb.Set(config.RedisCtx(), s.prefix+name, data, 0).Err()
}

func (s *RedisStore) Delete(name string) error {
	return s.rdb.Del(config.RedisCtx(), s.prefix+name).Err()
}

// New picks the backing store: Redis when configured and reachable,
// otherwise the SQLite file at LOCALSTORE_PATH (default 6ixgo-cs.db).
func New() (Store, error) {
	if config.RedisClient != nil {
		return NewRedisStore(config.RedisClient), nil
	}
	path := os.Getenv("LOCALSTORE_PATH")
	if path == "" {
		path = "6ixgo-cs.db"
	}
	return Open(path)
}

// GetJSON decodes a slot into out. A corrupt slot is treated as a miss.
func GetJSON(s Store, name string, out interface{}) bool {
	raw, ok := s.Get(name)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Printf("localstore: corrupt slot %s, treating as miss: %v", name, err)
		return false
	}
	return true
}

// SetJSON encodes v into a slot.
func SetJSON(s Store, name string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(name, raw)
}
