package question

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/provanota/provanota-backend/internal/apperr"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

const questionCols = `id, exam_id, statement, image_url, alternatives_json, correct_answer,
	tags_json, difficulty, area, ord, subject, topic, education_level, source_exam, year,
	question_hash, created_at`

func (s *SQLStore) Insert(ctx context.Context, q Question) error {
	aj, err := json.Marshal(q.Alternatives)
	if err != nil {
		return err
	}
	tj, err := json.Marshal(q.Tags)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO questions (`+questionCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`,
		q.ID, nullStr(q.ExamID), q.Statement, nullStr(q.ImageURL), string(aj), q.CorrectAnswer,
		string(tj), q.Difficulty, nullStr(q.Area), q.Order, nullStr(q.Subject), nullStr(q.Topic),
		q.EducationLevel, nullStr(q.SourceExam), nullInt(q.Year), nullStr(q.Hash), q.CreatedAt)
	if isUniqueViolation(err) {
		return apperr.DuplicateContent("question with identical content already exists")
	}
	return err
}

func (s *SQLStore) Get(ctx context.Context, id string) (Question, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+questionCols+` FROM questions WHERE id=$1`, id)
	return scanQuestion(row)
}

func (s *SQLStore) GetByIDs(ctx context.Context, ids []string) ([]Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ph := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		ph[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+questionCols+` FROM questions WHERE id IN (`+strings.Join(ph, ",")+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestions(rows)
}

func (s *SQLStore) Update(ctx context.Context, q Question) error {
	aj, err := json.Marshal(q.Alternatives)
	if err != nil {
		return err
	}
	tj, err := json.Marshal(q.Tags)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE questions SET exam_id=$1, statement=$2, image_url=$3,
		alternatives_json=$4, correct_answer=$5, tags_json=$6, difficulty=$7, area=$8, ord=$9,
		subject=$10, topic=$11, education_level=$12, source_exam=$13, year=$14 WHERE id=$15`,
		nullStr(q.ExamID), q.Statement, nullStr(q.ImageURL), string(aj), q.CorrectAnswer,
		string(tj), q.Difficulty, nullStr(q.Area), q.Order, nullStr(q.Subject), nullStr(q.Topic),
		q.EducationLevel, nullStr(q.SourceExam), nullInt(q.Year), q.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("question not found")
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("question not found")
	}
	return nil
}

func (s *SQLStore) DeleteByExam(ctx context.Context, examID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE exam_id=$1`, examID)
	return err
}

func (s *SQLStore) List(ctx context.Context, f Filter) ([]Question, error) {
	where, args := buildWhere(f)
	rows, err := s.db.QueryContext(ctx, `SELECT `+questionCols+` FROM questions`+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestions(rows)
}

func (s *SQLStore) ListByExam(ctx context.Context, examID string) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+questionCols+` FROM questions WHERE exam_id=$1 ORDER BY ord`, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestions(rows)
}

func (s *SQLStore) Count(ctx context.Context, f Filter) (int, error) {
	where, args := buildWhere(f)
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`+where, args...).Scan(&n)
	return n, err
}

func (s *SQLStore) SampleIDs(ctx context.Context, f Filter, n int) ([]string, error) {
	where, args := buildWhere(f)
	args = append(args, n)
	// random() exists on both sqlite and postgres
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT id FROM questions%s ORDER BY random() LIMIT $%d`, where, len(args)), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLStore) ExistsByHash(ctx context.Context, hash string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM questions WHERE question_hash=$1`, hash).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (s *SQLStore) Distinct(ctx context.Context, field string) ([]string, error) {
	var col string
	switch field {
	case FieldSubject:
		col = "subject"
	case FieldSourceExam:
		col = "source_exam"
	case FieldEducationLevel:
		col = "education_level"
	default:
		return nil, fmt.Errorf("distinct: unsupported field %q", field)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT `+col+` FROM questions WHERE `+col+` IS NOT NULL AND `+col+` != ''`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *SQLStore) YearRange(ctx context.Context) (int, int, error) {
	var min, max sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MIN(year), MAX(year) FROM questions WHERE year IS NOT NULL`).Scan(&min, &max)
	if err != nil {
		return 0, 0, err
	}
	return int(min.Int64), int(max.Int64), nil
}

func buildWhere(f Filter) (string, []interface{}) {
	var conds []string
	var args []interface{}
	next := func() int { return len(args) + 1 }

	in := func(col string, vals []string) {
		ph := make([]string, len(vals))
		for i, v := range vals {
			ph[i] = fmt.Sprintf("$%d", next())
			args = append(args, v)
		}
		conds = append(conds, col+" IN ("+strings.Join(ph, ",")+")")
	}

	if len(f.Subjects) > 0 {
		in("subject", f.Subjects)
	}
	if len(f.Topics) > 0 {
		in("topic", f.Topics)
	}
	if f.EducationLevel != "" {
		conds = append(conds, fmt.Sprintf("education_level=$%d", next()))
		args = append(args, f.EducationLevel)
	}
	if f.Difficulty != "" {
		conds = append(conds, fmt.Sprintf("difficulty=$%d", next()))
		args = append(args, f.Difficulty)
	}
	if len(f.Sources) > 0 {
		in("source_exam", f.Sources)
	}
	if f.YearMin != 0 {
		conds = append(conds, fmt.Sprintf("year>=$%d", next()))
		args = append(args, f.YearMin)
	}
	if f.YearMax != 0 {
		conds = append(conds, fmt.Sprintf("year<=$%d", next()))
		args = append(args, f.YearMax)
	}
	if f.ExamID != "" {
		conds = append(conds, fmt.Sprintf("exam_id=$%d", next()))
		args = append(args, f.ExamID)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanQuestion(row rowScanner) (Question, error) {
	var q Question
	var examID, imageURL, area, subject, topic, source, hash sql.NullString
	var year sql.NullInt64
	var aj, tj string
	err := row.Scan(&q.ID, &examID, &q.Statement, &imageURL, &aj, &q.CorrectAnswer,
		&tj, &q.Difficulty, &area, &q.Order, &subject, &topic, &q.EducationLevel,
		&source, &year, &hash, &q.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Question{}, apperr.NotFound("question not found")
	}
	if err != nil {
		return Question{}, err
	}
	q.ExamID = examID.String
	q.ImageURL = imageURL.String
	q.Area = area.String
	q.Subject = subject.String
	q.Topic = topic.String
	q.SourceExam = source.String
	q.Hash = hash.String
	q.Year = int(year.Int64)
	if err := json.Unmarshal([]byte(aj), &q.Alternatives); err != nil {
		return Question{}, err
	}
	if err := json.Unmarshal([]byte(tj), &q.Tags); err != nil {
		return Question{}, err
	}
	if q.Tags == nil {
		q.Tags = []string{}
	}
	return q, nil
}

func scanQuestions(rows *sql.Rows) ([]Question, error) {
	var out []Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n != 0}
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(strings.ToUpper(err.Error()), "UNIQUE")
}
