package output

import (
	"github.com/deontologician/rql/pkg/errors"
	"github.com/deontologician/rql/pkg/query"
)

// Sequence is the normalized, lazy view of a query result: a pull-based
// stream of output items. Cursor results stream one document per Next
// call; atom results yield exactly one item. Items are transient — the
// sequence never buffers what it has already produced, so unbounded
// cursors (changefeeds) work.
type Sequence struct {
	atom     interface{}
	cursor   query.Cursor
	consumed bool
	failed   bool
}

// Normalize exposes a query result uniformly as a Sequence. Array
// atoms are treated like cursors and yield their elements one at a
// time; scalars and documents yield exactly one item.
func Normalize(res query.Result) *Sequence {
	if res.IsCursor() {
		return &Sequence{cursor: res.Cursor}
	}
	if docs, ok := res.Atom.([]interface{}); ok {
		return &Sequence{cursor: query.NewSliceCursor(docs)}
	}
	return &Sequence{atom: res.Atom}
}

// Next returns the next output item. ok is false once the sequence is
// exhausted. A mid-stream read failure is returned as a STREAM_READ
// coded error and the sequence produces nothing further; items already
// handed out are not retracted.
func (s *Sequence) Next() (item interface{}, ok bool, err error) {
	if s.failed {
		return nil, false, nil
	}
	if s.cursor == nil {
		if s.consumed {
			return nil, false, nil
		}
		s.consumed = true
		return s.atom, true, nil
	}
	doc, ok, err := s.cursor.Next()
	if err != nil {
		s.failed = true
		return nil, false, errors.Wrap(err, errors.ErrStreamRead, "failed reading next document from cursor")
	}
	return doc, ok, nil
}

// Close releases the underlying cursor, if any.
func (s *Sequence) Close() error {
	if s.cursor != nil {
		return s.cursor.Close()
	}
	return nil
}
