package exam

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/provanota/provanota-backend/internal/apperr"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

const examCols = `e.id, e.title, e.year, e.banca, e.duration_minutes, e.instructions,
	e.areas_json, e.education_level, e.published, e.created_by, e.created_at,
	(SELECT COUNT(*) FROM questions q WHERE q.exam_id = e.id) AS question_count`

func (s *SQLStore) Insert(ctx context.Context, e Exam) error {
	aj, err := json.Marshal(e.Areas)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO exams
		(id, title, year, banca, duration_minutes, instructions, areas_json, education_level, published, created_by, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		e.ID, e.Title, e.Year, e.Banca, e.DurationMinutes, e.Instructions, string(aj),
		e.EducationLevel, e.Published, e.CreatedBy, e.CreatedAt)
	return err
}

func (s *SQLStore) Get(ctx context.Context, id string, publishedOnly bool) (Exam, error) {
	q := `SELECT ` + examCols + ` FROM exams e WHERE e.id=$1`
	if publishedOnly {
		q += ` AND e.published`
	}
	return scanExam(s.db.QueryRowContext(ctx, q, id))
}

func (s *SQLStore) List(ctx context.Context, opts ListOpts) ([]Exam, error) {
	q := `SELECT ` + examCols + ` FROM exams e`
	if opts.PublishedOnly {
		q += ` WHERE e.published ORDER BY e.year DESC`
	} else {
		q += ` ORDER BY e.created_at DESC`
	}
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Exam
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLStore) Update(ctx context.Context, e Exam) error {
	aj, err := json.Marshal(e.Areas)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE exams SET title=$1, year=$2, banca=$3,
		duration_minutes=$4, instructions=$5, areas_json=$6, education_level=$7 WHERE id=$8`,
		e.Title, e.Year, e.Banca, e.DurationMinutes, e.Instructions, string(aj),
		e.EducationLevel, e.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("exam not found")
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM exams WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("exam not found")
	}
	return nil
}

func (s *SQLStore) SetPublished(ctx context.Context, id string, published bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE exams SET published=$1 WHERE id=$2`, published, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("exam not found")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanExam(row rowScanner) (Exam, error) {
	var e Exam
	var aj string
	err := row.Scan(&e.ID, &e.Title, &e.Year, &e.Banca, &e.DurationMinutes, &e.Instructions,
		&aj, &e.EducationLevel, &e.Published, &e.CreatedBy, &e.CreatedAt, &e.QuestionCount)
	if errors.Is(err, sql.ErrNoRows) {
		return Exam{}, apperr.NotFound("exam not found")
	}
	if err != nil {
		return Exam{}, err
	}
	if err := json.Unmarshal([]byte(aj), &e.Areas); err != nil {
		return Exam{}, err
	}
	return e, nil
}
