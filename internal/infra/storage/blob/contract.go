package blob

import (
	"context"
	"database/sql"
	"time"
)

// Store хранилище документов, адресуемых путём.
// Нет ни append, ни patch, ни compare-and-swap: только чтение и полная перезапись.
type Store interface {
	Load(ctx context.Context, path string) ([]byte, error)
	Overwrite(ctx context.Context, path string, body []byte) error
}

// DBExecutor интерфейс для выполнения запросов
// Поддерживает *sql.DB и *sql.Tx
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Metrics метрики операций с хранилищем
type Metrics interface {
	ObserveStoreOperation(operation, result string, duration time.Duration)
	IncStoreRetry(operation string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
