package user

import "errors"

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	ID                 string `json:"id"`
	Email              string `json:"email"`
	PasswordHash       string `json:"-"`
	Name               string `json:"name"`
	Role               string `json:"role"`
	SubscriptionStatus string `json:"subscription_status"`
	PreferredExam      string `json:"preferred_exam,omitempty"`
	CreatedAt          int64  `json:"created_at,omitempty"`
}

// Deliberately uniform: login never reveals whether the email exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

var ErrEmailTaken = errors.New("email already registered")
