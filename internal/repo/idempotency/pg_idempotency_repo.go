package idempotency_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"checkout-svc/internal/domain/checkout"
	"checkout-svc/internal/domain/gateway"
	"checkout-svc/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// PgStore deduplicates session creation across instances via the
// checkout_requests table.
type PgStore struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
}

func NewPgStore(pg *postgres.Postgres) checkout.Store {
	return &PgStore{db: pg.Pool, builder: pg.Builder}
}

func (s *PgStore) Get(ctx context.Context, ref string) (gateway.SessionHandle, bool, error) {
	query, args, err := s.builder.
		Select("session_id", "session_url").
		From("checkout_requests").
		Where(squirrel.Eq{"order_ref": ref}).
		Where(squirrel.Gt{"expires_at": time.Now().UTC()}).
		ToSql()
	if err != nil {
		return gateway.SessionHandle{}, false, fmt.Errorf("build select query: %w", err)
	}

	var handle gateway.SessionHandle
	err = s.db.QueryRow(ctx, query, args...).Scan(&handle.ID, &handle.URL)
	if errors.Is(err, pgx.ErrNoRows) {
		return gateway.SessionHandle{}, false, nil
	}
	if err != nil {
		return gateway.SessionHandle{}, false, fmt.Errorf("query checkout request: %w", err)
	}

	return handle, true, nil
}

func (s *PgStore) Put(ctx context.Context, ref string, handle gateway.SessionHandle, ttl time.Duration) error {
	now := time.Now().UTC()
	query, args, err := s.builder.
		Insert("checkout_requests").
		Columns("order_ref", "session_id", "session_url", "created_at", "expires_at").
		Values(ref, handle.ID, handle.URL, now, now.Add(ttl)).
		Suffix("ON CONFLICT (order_ref) DO UPDATE SET session_id = EXCLUDED.session_id, session_url = EXCLUDED.session_url, expires_at = EXCLUDED.expires_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("store checkout request: %w", err)
	}
	return nil
}
