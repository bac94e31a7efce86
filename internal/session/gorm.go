package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sessionRecord struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Data      []byte    `gorm:"not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
}

func (sessionRecord) TableName() string { return "storefront_sessions" }

type gormBackend struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormStore migrates the session table and returns a store on db.
func NewGormStore(db *gorm.DB, keyPairs ...[]byte) (*BackendStore, error) {
	if err := db.AutoMigrate(&sessionRecord{}); err != nil {
		return nil, fmt.Errorf("migrate sessions: %w", err)
	}
	return newBackendStore(&gormBackend{db: db, now: time.Now}, keyPairs...), nil
}

func (b *gormBackend) load(ctx context.Context, id string) ([]byte, error) {
	var rec sessionRecord
	err := b.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", id, b.now()).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNoSession
	}
	if err != nil {
		return nil, err
	}
	return rec.Data, nil
}

func (b *gormBackend) save(ctx context.Context, id string, data []byte, ttl time.Duration) error {
	rec := sessionRecord{ID: id, Data: data, ExpiresAt: b.now().Add(ttl)}
	return b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "expires_at"}),
	}).Create(&rec).Error
}

func (b *gormBackend) delete(ctx context.Context, id string) error {
	return b.db.WithContext(ctx).Delete(&sessionRecord{}, "id = ?", id).Error
}

func (b *gormBackend) purge(ctx context.Context) (int64, error) {
	res := b.db.WithContext(ctx).Where("expires_at <= ?", b.now()).Delete(&sessionRecord{})
	return res.RowsAffected, res.Error
}

// Reap deletes expired rows every interval until ctx is done. It is a no-op
// for stores that expire entries on their own.
func (s *BackendStore) Reap(ctx context.Context, interval time.Duration) {
	gb, ok := s.backend.(*gormBackend)
	if !ok {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := gb.purge(ctx)
			if err != nil {
				slog.Warn("session_reap_error", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("session_reap", "deleted", n)
			}
		}
	}
}
