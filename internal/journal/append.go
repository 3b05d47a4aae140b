package journal

import (
	"context"
	"fmt"
)

// Entry is one journaled payload.
type Entry struct {
	ID        string `json:"id"`
	Seq       int64  `json:"seq"`
	Session   string `json:"session"`
	EventName string `json:"event_name"`
	Payload   []byte `json:"payload"` // CBOR
	Record    []byte `json:"record"`  // stable JSON, see EncodeRecord
}

// Append inserts e and reports whether a new row was written.
//
// An empty ID is computed with PayloadID and an empty Session is filled with
// the journal's session. Seq is assigned by the database as one past the
// current maximum; any Seq on e is ignored.
//
// Uses ON CONFLICT(id) DO NOTHING for idempotency: appending a payload that is
// already journaled returns inserted=false and no error.
func (j *Journal) Append(ctx context.Context, e Entry) (inserted bool, err error) {
	if len(e.Payload) == 0 {
		return false, fmt.Errorf("append entry: empty payload")
	}
	if e.ID == "" {
		e.ID = PayloadID(e.Payload)
	}
	if e.Session == "" {
		e.Session = j.session
	}
	if e.Record == nil {
		e.Record = []byte("null")
	}

	// The WHERE clause disambiguates the upsert clause from a join constraint.
	res, err := j.db.ExecContext(ctx, `
		INSERT INTO entries (id, seq, session, event_name, payload, record)
		SELECT ?, COALESCE(MAX(seq), 0) + 1, ?, ?, ?, ?
		FROM entries
		WHERE true
		ON CONFLICT(id) DO NOTHING
	`,
		e.ID,
		e.Session,
		e.EventName,
		e.Payload,
		e.Record,
	)
	if err != nil {
		return false, fmt.Errorf("append entry: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("append entry: rows affected: %w", err)
	}
	if n == 0 {
		j.log.Debug("duplicate payload ignored", "id", e.ID, "event", e.EventName)
		return false, nil
	}
	return true, nil
}
