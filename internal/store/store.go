// Package store is a small JSON document store used for cart sessions and store
// settings. Adapters exist for the remote database and the local cache.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gordopods/storefront/internal/models"
	"github.com/gordopods/storefront/pkg/logging"
)

var ErrNotFound = errors.New("store: key not found")

type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type GormStore struct {
	DB   *gorm.DB
	Name string
}

func NewGormStore(db *gorm.DB, name string) *GormStore {
	return &GormStore{DB: db, Name: name}
}

// Migrate creates the entries table on a database that only backs a store.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(&models.Entry{})
}

func (s *GormStore) Load(ctx context.Context, key string) ([]byte, error) {
	var e models.Entry
	if err := s.DB.WithContext(ctx).Where("key = ?", key).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s load %q: %w", s.Name, key, err)
	}
	return []byte(e.Value), nil
}

// Save upserts; the last write wins.
func (s *GormStore) Save(ctx context.Context, key string, value []byte) error {
	e := models.Entry{Key: key, Value: string(value), UpdatedAt: time.Now().UTC()}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("%s save %q: %w", s.Name, key, err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	if err := s.DB.WithContext(ctx).Where("key = ?", key).Delete(&models.Entry{}).Error; err != nil {
		return fmt.Errorf("%s delete %q: %w", s.Name, key, err)
	}
	return nil
}

// Fallback reads from Primary and falls back to Cache when Primary fails.
// Writes go to both; a write succeeds if either side accepted it.
type Fallback struct {
	Primary Store
	Cache   Store
}

func (f *Fallback) Load(ctx context.Context, key string) ([]byte, error) {
	l := logging.FromContext(ctx).With("component", "store.fallback", "key", key)

	v, err := f.Primary.Load(ctx, key)
	if err == nil {
		if cerr := f.Cache.Save(ctx, key, v); cerr != nil {
			l.Warn("cache_refresh_error", "error", cerr)
		}
		return v, nil
	}
	if errors.Is(err, ErrNotFound) {
		return nil, err
	}

	l.Warn("primary_load_error", "error", err)
	return f.Cache.Load(ctx, key)
}

func (f *Fallback) Save(ctx context.Context, key string, value []byte) error {
	return f.both(ctx, "save", key, func(s Store) error { return s.Save(ctx, key, value) })
}

func (f *Fallback) Delete(ctx context.Context, key string) error {
	return f.both(ctx, "delete", key, func(s Store) error { return s.Delete(ctx, key) })
}

func (f *Fallback) both(ctx context.Context, op, key string, fn func(Store) error) error {
	l := logging.FromContext(ctx).With("component", "store.fallback", "key", key)

	perr := fn(f.Primary)
	cerr := fn(f.Cache)
	switch {
	case perr == nil && cerr != nil:
		l.Warn("cache_"+op+"_error", "error", cerr)
	case perr != nil && cerr == nil:
		l.Warn("primary_"+op+"_error", slog.String("fallback", "cache"), "error", perr)
	case perr != nil && cerr != nil:
		return errors.Join(perr, cerr)
	}
	return nil
}

func LoadJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := s.Load(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %q: %w", key, err)
	}
	return nil
}

func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return s.Save(ctx, key, raw)
}
