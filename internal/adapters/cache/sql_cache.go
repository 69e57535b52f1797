package cache

import (
	"booking-location-service/internal/platform/obs"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SQLCache is a Postgres-backed key/value cache over the cache_entries table.
// Expired rows are ignored on read and overwritten on the next write.
type SQLCache struct {
	DB  *sql.DB
	log *zap.Logger
	now func() time.Time
}

func NewSQLCache(db *sql.DB, log *zap.Logger) *SQLCache {
	return &SQLCache{DB: db, log: log, now: time.Now}
}

// Get returns the live value stored under key.
func (s *SQLCache) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, s.log, "cache.sql.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("sql cache: db is nil")
	}

	q := `
	SELECT value
	FROM cache_entries
	WHERE key = $1 AND expires_at > $2;
	`

	var value []byte
	err = s.DB.QueryRowContext(ctx, q, key, s.now().UTC()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get sql cache: query cache_entries table: %w", err)
	}

	return value, true, nil
}

// Set upserts key with a fresh expiry.
func (s *SQLCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) (err error) {
	defer obs.Time(ctx, s.log, "cache.sql.Set")(&err)

	if s.DB == nil {
		return errors.New("sql cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert sql cache: empty key")
	}

	q := `
	INSERT INTO cache_entries (key, value, expires_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (key) DO UPDATE
	SET value = EXCLUDED.value,
		expires_at = EXCLUDED.expires_at;
	`

	expiresAt := s.now().UTC().Add(ttl)
	if _, err := s.DB.ExecContext(ctx, q, key, value, expiresAt); err != nil {
		return fmt.Errorf("insert sql cache key=%q: %w", key, err)
	}

	return nil
}

// Purge deletes expired rows and reports how many were removed.
func (s *SQLCache) Purge(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("sql cache: db is nil")
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM cache_entries WHERE expires_at <= $1;`, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("purge sql cache: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge sql cache: rows affected: %w", err)
	}

	return n, nil
}
