package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/YuvrajShekhar/docmanager-client/internal/logger"
)

// localKeyValueRepository is the SQLite-backed [KeyValueRepository]. Rows
// live in the local_storage table created by the embedded migrations.
type localKeyValueRepository struct {
	db     *DB
	logger *logger.Logger
	now    func() time.Time
}

// NewLocalKeyValueRepository constructs a [KeyValueRepository] over db.
func NewLocalKeyValueRepository(db *DB, logger *logger.Logger) KeyValueRepository {
	logger.Debug().Msg("creating local key/value repository")
	return &localKeyValueRepository{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

func (r *localKeyValueRepository) Get(ctx context.Context, key string) (string, error) {
	log := logger.FromContext(ctx)

	query, args, err := selectValueQuery(key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "localKeyValueRepository.Get").
			Str("key", key).
			Msg("failed to read local value")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return value, nil
}

func (r *localKeyValueRepository) Set(ctx context.Context, key, value string) error {
	log := logger.FromContext(ctx)

	query, args, err := upsertValueQuery(key, value, r.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "localKeyValueRepository.Set").
			Str("key", key).
			Msg("failed to upsert local value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *localKeyValueRepository) Delete(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	query, args, err := deleteValueQuery(key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "localKeyValueRepository.Delete").
			Str("key", key).
			Msg("failed to delete local value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
