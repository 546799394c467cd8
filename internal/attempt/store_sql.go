package attempt

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/provanota/provanota-backend/internal/apperr"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

const attemptCols = `id, user_id, exam_id, simulation_id, exam_title, mode, start_time,
	end_time, status, answers_json, score_json, duration_seconds`

func (s *SQLStore) Insert(ctx context.Context, a Attempt) error {
	aj, err := json.Marshal(a.Answers)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO attempts (`+attemptCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		a.ID, a.UserID, nullStr(a.ExamID), nullStr(a.SimulationID), a.ExamTitle, a.Mode,
		a.StartTime, nullInt64(a.EndTime), a.Status, string(aj), nil, a.DurationSeconds)
	return err
}

func (s *SQLStore) GetForUser(ctx context.Context, id, userID string) (Attempt, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+attemptCols+` FROM attempts WHERE id=$1 AND user_id=$2`, id, userID)
	return scanAttempt(row)
}

func (s *SQLStore) List(ctx context.Context, opts ListOpts) ([]Attempt, error) {
	if opts.Limit <= 0 || opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	q := `SELECT ` + attemptCols + ` FROM attempts WHERE user_id=$1`
	args := []interface{}{opts.UserID}
	if opts.Status != "" {
		q += ` AND status=$2`
		args = append(args, opts.Status)
	}
	q += ` ORDER BY start_time DESC LIMIT ` + strconv.Itoa(opts.Limit) + ` OFFSET ` + strconv.Itoa(opts.Offset)
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Attempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// SetAnswer does a read-modify-write on the answer map. Concurrent
// writes to the same attempt are last-write-wins per question id, which
// is the documented consistency for in-progress answering.
func (s *SQLStore) SetAnswer(ctx context.Context, id, questionID, letter string) error {
	row := s.db.QueryRowContext(ctx, `SELECT answers_json FROM attempts WHERE id=$1`, id)
	var aj string
	if err := row.Scan(&aj); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("attempt not found")
		}
		return err
	}
	answers := map[string]string{}
	if err := json.Unmarshal([]byte(aj), &answers); err != nil {
		return err
	}
	answers[questionID] = letter
	buf, err := json.Marshal(answers)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `UPDATE attempts SET answers_json=$1 WHERE id=$2`, string(buf), id)
	return err
}

func (s *SQLStore) Complete(ctx context.Context, id string, score ScoreRecord, endTime int64) error {
	sj, err := json.Marshal(score)
	if err != nil {
		return err
	}
	// Conditional on status so a lost duplicate-submit race cannot
	// overwrite an already frozen attempt.
	res, err := s.db.ExecContext(ctx, `UPDATE attempts SET status=$1, score_json=$2, end_time=$3
		WHERE id=$4 AND status=$5`, StatusCompleted, string(sj), endTime, id, StatusInProgress)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.InvalidState("attempt already completed")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAttempt(row rowScanner) (Attempt, error) {
	var a Attempt
	var examID, simID, scoreJSON sql.NullString
	var endTime sql.NullInt64
	var duration sql.NullInt64
	var aj string
	err := row.Scan(&a.ID, &a.UserID, &examID, &simID, &a.ExamTitle, &a.Mode, &a.StartTime,
		&endTime, &a.Status, &aj, &scoreJSON, &duration)
	if errors.Is(err, sql.ErrNoRows) {
		return Attempt{}, apperr.NotFound("attempt not found")
	}
	if err != nil {
		return Attempt{}, err
	}
	a.ExamID = examID.String
	a.SimulationID = simID.String
	a.EndTime = endTime.Int64
	a.DurationSeconds = int(duration.Int64)
	if err := json.Unmarshal([]byte(aj), &a.Answers); err != nil {
		return Attempt{}, err
	}
	if a.Answers == nil {
		a.Answers = map[string]string{}
	}
	if scoreJSON.Valid && scoreJSON.String != "" {
		var sc ScoreRecord
		if err := json.Unmarshal([]byte(scoreJSON.String), &sc); err != nil {
			return Attempt{}, err
		}
		a.Score = &sc
	}
	return a, nil
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt64(n int64) sql.NullInt64 {
	return sql.NullInt64{Int64: n, Valid: n != 0}
}
