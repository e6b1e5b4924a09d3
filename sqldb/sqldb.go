// sqldb/sqldb.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package sqldb provides prepared queries with named ":param"
// placeholders on top of database/sql.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Database prepares queries; it is the only thing the query engine needs
// from the storage layer.
type Database interface {
	Prepare(text string) (Query, error)
	Close() error
}

// Query is a prepared statement. Bound values persist across executions.
// Rows are iterated with Next and Record; Finish releases the result
// cursor so the query can be executed again.
type Query interface {
	Bind(name string, value any)
	Exec() error
	Next() bool
	Record() Record
	Err() error
	Finish()
	Close() error
}

// Dialect is the placeholder syntax of the underlying driver.
type Dialect int

const (
	DialectQuestion Dialect = iota // sqlite: ?
	DialectDollar                  // postgres: $1, $2, ...
)

type DB struct {
	db      *sql.DB
	dialect Dialect
	ctx     context.Context
}

// Open opens a database with the given driver, which must be "sqlite" or
// "postgres".
func Open(driver, dsn string) (*DB, error) {
	var dialect Dialect
	switch driver {
	case "sqlite":
		dialect = DialectQuestion
	case "postgres":
		dialect = DialectDollar
	default:
		return nil, fmt.Errorf("%s: %w", driver, ErrUnknownDriver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" && (dsn == ":memory:" || strings.Contains(dsn, "mode=memory")) {
		// Each connection to an in-memory database gets its own database.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", dsn, err)
	}
	return New(db, dialect), nil
}

func New(db *sql.DB, dialect Dialect) *DB {
	return &DB{db: db, dialect: dialect, ctx: context.Background()}
}

func (d *DB) Close() error {
	return d.db.Close()
}

// Exec runs a statement that returns no rows, e.g. to create a schema.
// Unlike Prepare, positional driver placeholders are used.
func (d *DB) Exec(text string, args ...any) error {
	_, err := d.db.ExecContext(d.ctx, text, args...)
	return err
}

func (d *DB) Prepare(text string) (Query, error) {
	rewritten, params := rewritePlaceholders(text, d.dialect)
	stmt, err := d.db.PrepareContext(d.ctx, rewritten)
	if err != nil {
		return nil, fmt.Errorf("prepare %q: %w", text, err)
	}
	return &stmtQuery{
		ctx:    d.ctx,
		text:   text,
		stmt:   stmt,
		params: params,
		bound:  make(map[string]any),
	}, nil
}

// rewritePlaceholders replaces ":name" placeholders with the dialect's
// positional ones and returns the parameter name for each position.
// Text inside single quotes and "::" casts are left alone.
func rewritePlaceholders(text string, dialect Dialect) (string, []string) {
	var sb strings.Builder
	var params []string
	dollar := make(map[string]int)

	isIdent := func(c byte, first bool) bool {
		return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (!first && c >= '0' && c <= '9')
	}

	inQuote := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			sb.WriteByte(c)
		case inQuote:
			sb.WriteByte(c)
		case c == ':' && i+1 < len(text) && text[i+1] == ':':
			sb.WriteString("::")
			i++
		case c == ':' && i+1 < len(text) && isIdent(text[i+1], true):
			j := i + 1
			for j < len(text) && isIdent(text[j], false) {
				j++
			}
			name := text[i+1 : j]
			if dialect == DialectDollar {
				n, ok := dollar[name]
				if !ok {
					params = append(params, name)
					n = len(params)
					dollar[name] = n
				}
				sb.WriteString("$" + strconv.Itoa(n))
			} else {
				params = append(params, name)
				sb.WriteByte('?')
			}
			i = j - 1
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String(), params
}

type stmtQuery struct {
	ctx    context.Context
	text   string
	stmt   *sql.Stmt
	params []string
	bound  map[string]any

	rows    *sql.Rows
	columns []string
	record  Record
	err     error
}

func (q *stmtQuery) Bind(name string, value any) {
	q.bound[strings.TrimPrefix(name, ":")] = value
}

func (q *stmtQuery) Exec() error {
	if q.stmt == nil {
		return ErrQueryClosed
	}
	q.Finish()

	args := make([]any, len(q.params))
	for i, p := range q.params {
		v, ok := q.bound[p]
		if !ok {
			return fmt.Errorf("%s in %q: %w", p, q.text, ErrUnboundParameter)
		}
		args[i] = v
	}

	rows, err := q.stmt.QueryContext(q.ctx, args...)
	if err != nil {
		return fmt.Errorf("exec %q: %w", q.text, err)
	}
	columns, err := rows.Columns()
	if err != nil {
		rows.Close()
		return err
	}
	q.rows, q.columns, q.err = rows, columns, nil
	return nil
}

func (q *stmtQuery) Next() bool {
	if q.rows == nil {
		return false
	}
	if !q.rows.Next() {
		q.err = q.rows.Err()
		return false
	}

	values := make([]any, len(q.columns))
	dest := make([]any, len(q.columns))
	for i := range values {
		dest[i] = &values[i]
	}
	if err := q.rows.Scan(dest...); err != nil {
		q.err = err
		return false
	}
	q.record = NewRecord(q.columns, values)
	return true
}

func (q *stmtQuery) Record() Record {
	return q.record
}

// Err returns the error, if any, that stopped the last iteration.
func (q *stmtQuery) Err() error {
	return q.err
}

func (q *stmtQuery) Finish() {
	if q.rows != nil {
		q.rows.Close()
		q.rows = nil
	}
	q.record = Record{}
}

func (q *stmtQuery) Close() error {
	q.Finish()
	if q.stmt == nil {
		return nil
	}
	err := q.stmt.Close()
	q.stmt = nil
	return err
}

///////////////////////////////////////////////////////////////////////////
// CountingDatabase

// CountingDatabase wraps a Database and counts query executions, i.e.
// storage round trips.
type CountingDatabase struct {
	Database
	Execs int
}

func (c *CountingDatabase) Prepare(text string) (Query, error) {
	q, err := c.Database.Prepare(text)
	if err != nil {
		return nil, err
	}
	return &countingQuery{Query: q, db: c}, nil
}

type countingQuery struct {
	Query
	db *CountingDatabase
}

func (q *countingQuery) Exec() error {
	q.db.Execs++
	return q.Query.Exec()
}
