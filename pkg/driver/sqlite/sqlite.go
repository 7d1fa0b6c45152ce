// Package sqlite provides an embedded reference driver for the query
// capability: expressions are evaluated as SQL against a local sqlite
// database and rows stream back as JSON documents. It exists so the
// rendering pipeline can be exercised end-to-end without a remote
// server; network drivers register under their own names.
package sqlite

import (
	"database/sql"

	_ "modernc.org/sqlite"

	"github.com/deontologician/rql/pkg/errors"
	"github.com/deontologician/rql/pkg/query"
)

func init() {
	query.Register("sqlite", Connector{})
}

// Connector opens sqlite-backed connections.
type Connector struct{}

// Connect opens the database named by opts.DSN (":memory:" when empty).
func (Connector) Connect(opts query.ConnectOpts) (query.Conn, error) {
	dsn := opts.DSN
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConnectionFailed, "failed to open %s", dsn)
	}
	db.SetMaxOpenConns(1) // sqlite does not support concurrent write access
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, errors.ErrConnectionFailed, "failed to open %s", dsn)
	}
	return &conn{db: db}, nil
}

type conn struct {
	db *sql.DB
}

// Evaluate runs expr as a SQL statement. Each result row becomes one
// document keyed by column name, streamed through a cursor.
func (c *conn) Evaluate(expr string) (query.Result, error) {
	rows, err := c.db.Query(expr)
	if err != nil {
		return query.Result{}, errors.Wrap(err, errors.ErrQueryFailed, "query failed")
	}
	cols, err := rows.Columns()
	if err != nil {
		_ = rows.Close()
		return query.Result{}, errors.Wrap(err, errors.ErrQueryFailed, "failed to read result columns")
	}
	if len(cols) == 0 {
		// Statements without a result set (DDL, INSERT, ...) must not
		// hold the connection open; report them as a single document.
		if err := rows.Close(); err != nil {
			return query.Result{}, errors.Wrap(err, errors.ErrQueryFailed, "failed to finish statement")
		}
		return query.Result{Atom: map[string]interface{}{"ok": true}}, nil
	}
	return query.Result{Cursor: &rowCursor{rows: rows, cols: cols}}, nil
}

func (c *conn) Close() error {
	return c.db.Close()
}

// rowCursor adapts sql.Rows to the query.Cursor interface.
type rowCursor struct {
	rows *sql.Rows
	cols []string
}

func (rc *rowCursor) Next() (interface{}, bool, error) {
	if !rc.rows.Next() {
		if err := rc.rows.Err(); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}

	vals := make([]interface{}, len(rc.cols))
	ptrs := make([]interface{}, len(rc.cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := rc.rows.Scan(ptrs...); err != nil {
		return nil, false, err
	}

	doc := make(map[string]interface{}, len(rc.cols))
	for i, col := range rc.cols {
		doc[col] = jsonValue(vals[i])
	}
	return doc, true, nil
}

func (rc *rowCursor) Close() error {
	return rc.rows.Close()
}

// jsonValue converts driver-native values to JSON-friendly ones.
func jsonValue(v interface{}) interface{} {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
