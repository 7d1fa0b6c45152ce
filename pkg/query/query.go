// Package query defines the capability interfaces between the CLI and
// whatever driver actually evaluates expressions against a server. The
// rendering pipeline depends only on these types; concrete drivers
// register themselves under pkg/driver.
package query

import (
	"sort"
	"sync"

	"github.com/deontologician/rql/pkg/errors"
)

// ConnectOpts carries everything a driver needs to reach its backend.
type ConnectOpts struct {
	Host     string
	Port     int
	AuthKey  string
	Database string
	// DSN is a driver-specific data source string. Drivers that speak a
	// host/port protocol ignore it; embedded drivers use it as the store
	// location.
	DSN string
}

// Conn is an open connection capable of evaluating expressions.
// Close must be safe to call exactly once, including after a failed
// evaluation, so callers can defer it unconditionally.
type Conn interface {
	Evaluate(expr string) (Result, error)
	Close() error
}

// Connector opens connections. Implementations must not retain opts.
type Connector interface {
	Connect(opts ConnectOpts) (Conn, error)
}

// Result is what evaluating an expression yields: either a single atom
// (scalar or document) or a cursor streaming documents incrementally.
// Exactly one of the two is meaningful; Cursor == nil means atom.
type Result struct {
	Atom   interface{}
	Cursor Cursor
}

// IsCursor reports whether the result streams rather than holding one value.
func (r Result) IsCursor() bool { return r.Cursor != nil }

// Cursor is a forward-only stream of documents in server-delivered
// order. Next blocks until the next document is available; ok is false
// once the stream is exhausted or has failed. A cursor may be
// unbounded (e.g. a changefeed) — consumers must not try to drain it
// eagerly.
type Cursor interface {
	Next() (doc interface{}, ok bool, err error)
	Close() error
}

// SliceCursor adapts an in-memory slice to the Cursor interface. Used
// by embedded drivers for already-materialized results and by tests.
type SliceCursor struct {
	docs []interface{}
	pos  int
}

// NewSliceCursor returns a cursor over docs.
func NewSliceCursor(docs []interface{}) *SliceCursor {
	return &SliceCursor{docs: docs}
}

func (c *SliceCursor) Next() (interface{}, bool, error) {
	if c.pos >= len(c.docs) {
		return nil, false, nil
	}
	doc := c.docs[c.pos]
	c.pos++
	return doc, true, nil
}

func (c *SliceCursor) Close() error { return nil }

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Connector)
)

// Register makes a driver available under name. Drivers call this from
// their init functions; registering the same name twice panics.
func Register(name string, c Connector) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[name]; dup {
		panic("query: duplicate driver registration: " + name)
	}
	registry[name] = c
}

// Lookup returns the driver registered under name.
func Lookup(name string) (Connector, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	c, ok := registry[name]
	if !ok {
		return nil, errors.Newf(errors.ErrDriverUnknown, "no driver registered as %q (have %v)", name, driverNames())
	}
	return c, nil
}

// Drivers returns the registered driver names, sorted.
func Drivers() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return driverNames()
}

func driverNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
