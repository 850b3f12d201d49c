package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// BlacklistRepository records revoked refresh-token ids. Postgres is the
// durable source of truth; redis keeps a fast-path copy that expires with the
// token itself.
type BlacklistRepository struct {
	pool  *pgxpool.Pool
	cache *redis.Client
}

func NewBlacklistRepository(pool *pgxpool.Pool, cache *redis.Client) *BlacklistRepository {
	return &BlacklistRepository{pool: pool, cache: cache}
}

func blacklistKey(jti string) string {
	return fmt.Sprintf("blacklist:%s", jti)
}

func (r *BlacklistRepository) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	const query = `
		INSERT INTO token_blacklist (jti, expires_at, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (jti) DO NOTHING
	`
	if _, err := r.pool.Exec(ctx, query, jti, expiresAt); err != nil {
		return err
	}

	if ttl := time.Until(expiresAt); ttl > 0 {
		// Cache failures are non-fatal; the durable row still blocks the token.
		_ = r.cache.Set(ctx, blacklistKey(jti), "1", ttl).Err()
	}
	return nil
}

func (r *BlacklistRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if n, err := r.cache.Exists(ctx, blacklistKey(jti)).Result(); err == nil && n > 0 {
		return true, nil
	}

	const query = `SELECT EXISTS (SELECT 1 FROM token_blacklist WHERE jti = $1)`
	var revoked bool
	if err := r.pool.QueryRow(ctx, query, jti).Scan(&revoked); err != nil {
		return false, err
	}
	return revoked, nil
}

// PurgeExpired removes entries whose tokens have passed their natural expiry.
func (r *BlacklistRepository) PurgeExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM token_blacklist WHERE expires_at < NOW()`
	cmd, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
