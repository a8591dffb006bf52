package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/vaga/internal/models"
)

// credential is the single bearer-token slot: set on login, cleared on
// logout or when the server rejects the token.
type credential struct {
	ID    uint `gorm:"primarykey"`
	Token string
}

// snapshot is the last successfully fetched today feed, kept so the
// board can show something (flagged stale) while the network is down.
type snapshot struct {
	ID        uint `gorm:"primarykey"`
	FetchedAt time.Time
	Payload   []byte
}

// Store is vaga's local state at ~/.vaga/vaga.db. The remote API stays
// the system of record; nothing here is authoritative.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the sqlite store at path and runs
// migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create vaga directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	if err := db.AutoMigrate(&credential{}, &snapshot{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Token returns the persisted bearer token, or "" when logged out.
func (s *Store) Token() (string, error) {
	var c credential
	err := s.db.First(&c, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return c.Token, nil
}

// SaveToken persists the bearer token.
func (s *Store) SaveToken(token string) error {
	c := credential{ID: 1, Token: token}
	return s.db.Save(&c).Error
}

// ClearToken removes the persisted credential.
func (s *Store) ClearToken() error {
	return s.db.Delete(&credential{}, 1).Error
}

// SaveSnapshot replaces the cached today feed.
func (s *Store) SaveSnapshot(fetchedAt time.Time, sessions []models.Session) error {
	payload, err := json.Marshal(sessions)
	if err != nil {
		return err
	}
	snap := snapshot{ID: 1, FetchedAt: fetchedAt, Payload: payload}
	return s.db.Save(&snap).Error
}

// LastSnapshot returns the cached feed and when it was fetched. ok is
// false when nothing was ever cached.
func (s *Store) LastSnapshot() (sessions []models.Session, fetchedAt time.Time, ok bool, err error) {
	var snap snapshot
	dbErr := s.db.First(&snap, 1).Error
	if errors.Is(dbErr, gorm.ErrRecordNotFound) {
		return nil, time.Time{}, false, nil
	}
	if dbErr != nil {
		return nil, time.Time{}, false, dbErr
	}
	if err := json.Unmarshal(snap.Payload, &sessions); err != nil {
		return nil, time.Time{}, false, err
	}
	return sessions, snap.FetchedAt, true, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
