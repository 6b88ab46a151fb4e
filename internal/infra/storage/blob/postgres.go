package blob

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClassReservation/pkg/psqlbuilder"
)

const documentsTable = "reservation_documents"

// PostgresStore хранит документы в таблице reservation_documents (path -> body)
// Перезапись безусловная: версия документа не проверяется
type PostgresStore struct {
	db DBExecutor
}

// NewPostgresStore создает хранилище поверх PostgreSQL
func NewPostgresStore(db DBExecutor) *PostgresStore {
	return &PostgresStore{db: db}
}

// Load читает документ по пути
func (s *PostgresStore) Load(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, ErrInvalidPath
	}

	query, args, err := psqlbuilder.Select("body").
		From(documentsTable).
		Where(squirrel.Eq{"path": path}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Load - build select query: %v", ErrBuildQuery, err)
	}

	var body []byte
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Load - scan body for path=%s: %v", ErrExecQuery, path, err)
	}

	return body, nil
}

// Overwrite полностью заменяет документ по пути (создаёт, если его не было)
func (s *PostgresStore) Overwrite(ctx context.Context, path string, body []byte) error {
	if path == "" {
		return ErrInvalidPath
	}

	query, args, err := psqlbuilder.Insert(documentsTable).
		Columns("path", "body", "updated_at").
		Values(path, body, squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (path) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Overwrite - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Overwrite - execute upsert for path=%s: %v", ErrExecQuery, path, err)
	}

	return nil
}
