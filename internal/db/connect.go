package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:provanota.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/provanota?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	dbh, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := dbh.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, dbh, driver); err != nil {
		return nil, err
	}
	return dbh, nil
}

func ensureSchema(ctx context.Context, dbh *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := dbh.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  name TEXT NOT NULL,
  role TEXT NOT NULL,
  subscription_status TEXT NOT NULL DEFAULT 'free',
  preferred_exam TEXT,
  created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS exams (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  year INTEGER NOT NULL,
  banca TEXT NOT NULL,
  duration_minutes INTEGER NOT NULL,
  instructions TEXT NOT NULL,
  areas_json TEXT NOT NULL,
  education_level TEXT NOT NULL DEFAULT 'vestibular',
  published INTEGER NOT NULL DEFAULT 0,
  created_by TEXT NOT NULL,
  created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS questions (
  id TEXT PRIMARY KEY,
  exam_id TEXT,
  statement TEXT NOT NULL,
  image_url TEXT,
  alternatives_json TEXT NOT NULL,
  correct_answer TEXT NOT NULL,
  tags_json TEXT NOT NULL,
  difficulty TEXT NOT NULL,
  area TEXT,
  ord INTEGER NOT NULL DEFAULT 0,
  subject TEXT,
  topic TEXT,
  education_level TEXT NOT NULL DEFAULT 'vestibular',
  source_exam TEXT,
  year INTEGER,
  question_hash TEXT UNIQUE,
  created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_questions_exam_ord ON questions(exam_id, ord);
CREATE INDEX IF NOT EXISTS idx_questions_subject ON questions(subject);
CREATE INDEX IF NOT EXISTS idx_questions_source ON questions(source_exam);

CREATE TABLE IF NOT EXISTS simulations (
  id TEXT PRIMARY KEY,
  typ TEXT NOT NULL,
  criteria_json TEXT NOT NULL,
  question_ids_json TEXT NOT NULL,
  created_by TEXT NOT NULL,
  created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_simulations_creator ON simulations(created_by, created_at);

CREATE TABLE IF NOT EXISTS attempts (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  exam_id TEXT,
  simulation_id TEXT,
  exam_title TEXT NOT NULL,
  mode TEXT NOT NULL,
  start_time INTEGER NOT NULL,
  end_time INTEGER,
  status TEXT NOT NULL,
  answers_json TEXT NOT NULL,
  score_json TEXT,
  duration_seconds INTEGER
);
CREATE INDEX IF NOT EXISTS idx_attempts_user ON attempts(user_id, start_time);

CREATE TABLE IF NOT EXISTS audit_log (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id TEXT NOT NULL,
  action TEXT NOT NULL,
  target_id TEXT,
  detail_json TEXT NOT NULL DEFAULT '{}',
  created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_audit_user ON audit_log(user_id, id);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  name TEXT NOT NULL,
  role TEXT NOT NULL,
  subscription_status TEXT NOT NULL DEFAULT 'free',
  preferred_exam TEXT,
  created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS exams (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  year INTEGER NOT NULL,
  banca TEXT NOT NULL,
  duration_minutes INTEGER NOT NULL,
  instructions TEXT NOT NULL,
  areas_json TEXT NOT NULL,
  education_level TEXT NOT NULL DEFAULT 'vestibular',
  published BOOLEAN NOT NULL DEFAULT FALSE,
  created_by TEXT NOT NULL,
  created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS questions (
  id TEXT PRIMARY KEY,
  exam_id TEXT,
  statement TEXT NOT NULL,
  image_url TEXT,
  alternatives_json TEXT NOT NULL,
  correct_answer TEXT NOT NULL,
  tags_json TEXT NOT NULL,
  difficulty TEXT NOT NULL,
  area TEXT,
  ord INTEGER NOT NULL DEFAULT 0,
  subject TEXT,
  topic TEXT,
  education_level TEXT NOT NULL DEFAULT 'vestibular',
  source_exam TEXT,
  year INTEGER,
  question_hash TEXT UNIQUE,
  created_at BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_questions_exam_ord ON questions(exam_id, ord);
CREATE INDEX IF NOT EXISTS idx_questions_subject ON questions(subject);
CREATE INDEX IF NOT EXISTS idx_questions_source ON questions(source_exam);

CREATE TABLE IF NOT EXISTS simulations (
  id TEXT PRIMARY KEY,
  typ TEXT NOT NULL,
  criteria_json TEXT NOT NULL,
  question_ids_json TEXT NOT NULL,
  created_by TEXT NOT NULL,
  created_at BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_simulations_creator ON simulations(created_by, created_at);

CREATE TABLE IF NOT EXISTS attempts (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  exam_id TEXT,
  simulation_id TEXT,
  exam_title TEXT NOT NULL,
  mode TEXT NOT NULL,
  start_time BIGINT NOT NULL,
  end_time BIGINT,
  status TEXT NOT NULL,
  answers_json TEXT NOT NULL,
  score_json TEXT,
  duration_seconds INTEGER
);
CREATE INDEX IF NOT EXISTS idx_attempts_user ON attempts(user_id, start_time);

CREATE TABLE IF NOT EXISTS audit_log (
  id BIGSERIAL PRIMARY KEY,
  user_id TEXT NOT NULL,
  action TEXT NOT NULL,
  target_id TEXT,
  detail_json TEXT NOT NULL DEFAULT '{}',
  created_at BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_audit_user ON audit_log(user_id, id);
`
