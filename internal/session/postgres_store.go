package session

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps sealed sessions in the portal_sessions table.
// Expired rows are ignored on read and removed by DeleteExpired.
type PostgresStore struct {
	pool  *pgxpool.Pool
	codec *Codec
}

func NewPostgresStore(pool *pgxpool.Pool, codec *Codec) *PostgresStore {
	return &PostgresStore{pool: pool, codec: codec}
}

func (p *PostgresStore) Get(ctx context.Context, id string) (*Session, error) {
	const query = `
        SELECT data FROM portal_sessions
        WHERE id=$1 AND expires_at > NOW()`
	var sealed []byte
	if err := p.pool.QueryRow(ctx, query, id).Scan(&sealed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p.codec.Open(sealed)
}

func (p *PostgresStore) Save(ctx context.Context, s *Session) error {
	sealed, err := p.codec.Seal(s)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO portal_sessions (id, staff_id, data, created_at, expires_at)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (id) DO UPDATE SET data=EXCLUDED.data, expires_at=EXCLUDED.expires_at, updated_at=NOW()`
	_, err = p.pool.Exec(ctx, query, s.ID, s.Staff.ID, sealed, s.CreatedAt, s.ExpiresAt)
	return err
}

func (p *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM portal_sessions WHERE id=$1`, id)
	return err
}

// DeleteExpired removes lapsed sessions and returns how many were dropped.
func (p *PostgresStore) DeleteExpired(ctx context.Context) (int64, error) {
	cmd, err := p.pool.Exec(ctx, `DELETE FROM portal_sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}
