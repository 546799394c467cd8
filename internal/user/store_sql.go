package user

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/provanota/provanota-backend/internal/apperr"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

const userCols = `id, email, password_hash, name, role, subscription_status, preferred_exam, created_at`

func (s *SQLStore) Insert(ctx context.Context, u User) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO users (`+userCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Role, u.SubscriptionStatus,
		nullStr(u.PreferredExam), u.CreatedAt)
	if err != nil && strings.Contains(strings.ToUpper(err.Error()), "UNIQUE") {
		return ErrEmailTaken
	}
	return err
}

func (s *SQLStore) GetByID(ctx context.Context, id string) (User, error) {
	return scanUser(s.db.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE id=$1`, id))
}

func (s *SQLStore) GetByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(s.db.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE email=$1`, email))
}

func (s *SQLStore) SetSubscription(ctx context.Context, id, status string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET subscription_status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func scanUser(row *sql.Row) (User, error) {
	var u User
	var preferred sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role,
		&u.SubscriptionStatus, &preferred, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, apperr.NotFound("user not found")
	}
	if err != nil {
		return User{}, err
	}
	u.PreferredExam = preferred.String
	return u, nil
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
