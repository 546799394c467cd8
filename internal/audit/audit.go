// Package audit keeps an append-only trail of content curation and
// scoring actions for admin review.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"time"
)

type Entry struct {
	ID        int64           `json:"id"`
	UserID    string          `json:"user_id"`
	Action    string          `json:"action"`
	TargetID  string          `json:"target_id,omitempty"`
	Detail    json.RawMessage `json:"detail,omitempty"`
	CreatedAt int64           `json:"created_at"`
}

type Log struct{ db *sql.DB }

func NewLog(db *sql.DB) *Log { return &Log{db: db} }

// Record appends one entry. detail is marshalled to JSON; nil stores an
// empty object.
func (l *Log) Record(ctx context.Context, userID, action, targetID string, detail interface{}) error {
	data := []byte("{}")
	if detail != nil {
		b, err := json.Marshal(detail)
		if err != nil {
			return err
		}
		data = b
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO audit_log (user_id, action, target_id, detail_json, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		userID, action, targetID, string(data), time.Now().Unix())
	return err
}

// Recent returns the newest entries first.
func (l *Log) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, user_id, action, target_id, detail_json, created_at
		 FROM audit_log ORDER BY id DESC LIMIT `+strconv.Itoa(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var e Entry
		var target sql.NullString
		var detail string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &target, &detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.TargetID = target.String
		e.Detail = json.RawMessage(detail)
		out = append(out, e)
	}
	return out, rows.Err()
}
