package simulation

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

func (s *SQLStore) Insert(ctx context.Context, sim Simulation) error {
	cj, err := json.Marshal(sim.Criteria)
	if err != nil {
		return err
	}
	qj, err := json.Marshal(sim.QuestionIDs)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO simulations
		(id, typ, criteria_json, question_ids_json, created_by, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		sim.ID, sim.Type, string(cj), string(qj), sim.CreatedBy, sim.CreatedAt)
	return err
}

func (s *SQLStore) Get(ctx context.Context, id string) (Simulation, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, typ, criteria_json, question_ids_json, created_by, created_at
		FROM simulations WHERE id=$1`, id)
	return scanSimulation(row)
}

func (s *SQLStore) ListByCreator(ctx context.Context, userID string, limit int) ([]Simulation, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, typ, criteria_json, question_ids_json, created_by, created_at
		FROM simulations WHERE created_by=$1 ORDER BY created_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Simulation
	for rows.Next() {
		sim, err := scanSimulation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sim)
	}
	return out, rows.Err()
}

func (s *SQLStore) CountByCreator(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM simulations WHERE created_by=$1`, userID).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSimulation(row rowScanner) (Simulation, error) {
	var sim Simulation
	var cj, qj string
	err := row.Scan(&sim.ID, &sim.Type, &cj, &qj, &sim.CreatedBy, &sim.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Simulation{}, apperr.NotFound("simulation not found")
	}
	if err != nil {
		return Simulation{}, err
	}
	if err := json.Unmarshal([]byte(cj), &sim.Criteria); err != nil {
		return Simulation{}, err
	}
	if err := json.Unmarshal([]byte(qj), &sim.QuestionIDs); err != nil {
		return Simulation{}, err
	}
	sim.QuestionCount = len(sim.QuestionIDs)
	return sim, nil
}
