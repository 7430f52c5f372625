// Package dbtest содержит фейки database.PGX для тестов.
package dbtest

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/SergeyKozhin/calendar-import/internal/database"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

// Query одна записанная команда.
type Query struct {
	SQL  string
	Args []interface{}
}

// Recorder записывает все запросы и отвечает заранее заданными результатами.
// Get и Select кладут в dst значение из Rows по очереди, Exec отвечает Tag.
type Recorder struct {
	mu      sync.Mutex
	Queries []Query

	Rows []interface{}
	Tag  pgconn.CommandTag
	// Err, если задан, возвращается из каждого вызова с номером FailAt (с нуля), либо из всех при FailAt < 0.
	Err    error
	FailAt int

	calls int
}

func NewRecorder() *Recorder {
	return &Recorder{Tag: pgconn.CommandTag("INSERT 0 1"), FailAt: -1}
}

func (r *Recorder) record(s database.Sqlizer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query, args, err := s.ToSql()
	if err != nil {
		return fmt.Errorf("ToSql: %w", err)
	}
	r.Queries = append(r.Queries, Query{SQL: query, Args: args})

	call := r.calls
	r.calls++
	if r.Err != nil && (r.FailAt < 0 || r.FailAt == call) {
		return r.Err
	}

	return nil
}

func (r *Recorder) next(dst interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.Rows) == 0 {
		return nil
	}

	row := r.Rows[0]
	r.Rows = r.Rows[1:]

	reflect.ValueOf(dst).Elem().Set(reflect.ValueOf(row))
	return nil
}

func (r *Recorder) Exec(_ context.Context, s database.Sqlizer) (pgconn.CommandTag, error) {
	if err := r.record(s); err != nil {
		return nil, err
	}
	return r.Tag, nil
}

func (r *Recorder) Get(_ context.Context, dst interface{}, s database.Sqlizer) error {
	if err := r.record(s); err != nil {
		return err
	}
	return r.next(dst)
}

func (r *Recorder) Select(_ context.Context, dst interface{}, s database.Sqlizer) error {
	if err := r.record(s); err != nil {
		return err
	}
	return r.next(dst)
}

func (r *Recorder) ExecRaw(_ context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	return r.Exec(context.Background(), rawSQL{sql: sql, args: arguments})
}

type rawSQL struct {
	sql  string
	args []interface{}
}

func (s rawSQL) ToSql() (string, []interface{}, error) {
	return s.sql, s.args, nil
}

// DB фейковый database.PGX, транзакции пишут в тот же Recorder.
type DB struct {
	*Recorder

	Began      int
	Committed  int
	RolledBack int
	BeginErr   error
	CommitErr  error
}

func NewDB() *DB {
	return &DB{Recorder: NewRecorder()}
}

func (d *DB) BeginTx(context.Context, *pgx.TxOptions) (database.Tx, error) {
	if d.BeginErr != nil {
		return nil, d.BeginErr
	}
	d.Began++
	return &tx{DB: d}, nil
}

type tx struct {
	*DB
	done bool
}

func (t *tx) Commit(context.Context) error {
	if t.CommitErr != nil {
		return t.CommitErr
	}
	t.Committed++
	t.done = true
	return nil
}

func (t *tx) Rollback(context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.RolledBack++
	t.done = true
	return nil
}
