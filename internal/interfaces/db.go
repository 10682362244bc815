// Абстракция для самой БД
package interfaces

import "context"

// Pool - абстракция пула соединений БД, общая для всех репозиториев
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Begin(ctx context.Context) (Tx, error)
	Close() error
}

// абстракция для row (для одной записи)
type Row interface {
	Scan(dest ...any) error
}

// абстракция для rows (для нескольких записей)
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close()
	Err() error
}

// абстракция для транзакций
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (int64, error)
	QueryRow(ctx context.Context, sql string, arguments ...any) Row
	Query(ctx context.Context, sql string, arguments ...any) (Rows, error)
}
