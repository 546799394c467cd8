package user

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/provanota/provanota-backend/internal/logger"
)

type Service struct {
	store Store
	// Whitelisted emails become admins on registration; the client can
	// never choose its own role.
	isAdminEmail func(email string) bool
	log          *logger.Logger
}

func NewService(store Store, isAdminEmail func(string) bool, log *logger.Logger) *Service {
	return &Service{store: store, isAdminEmail: isAdminEmail, log: log}
}

func (s *Service) Register(ctx context.Context, email, password, name string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	role := RoleStudent
	if s.isAdminEmail(email) {
		role = RoleAdmin
	}
	u := User{
		ID:                 uuid.NewString(),
		Email:              email,
		PasswordHash:       string(hash),
		Name:               name,
		Role:               role,
		SubscriptionStatus: "free",
		CreatedAt:          time.Now().Unix(),
	}
	if err := s.store.Insert(ctx, u); err != nil {
		return User{}, err
	}
	s.log.Info("user registered", "user_id", u.ID, "role", role)
	return u, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (User, error) {
	u, err := s.store.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id string) (User, error) {
	return s.store.GetByID(ctx, id)
}

func (s *Service) UpgradeSubscription(ctx context.Context, id string) error {
	return s.store.SetSubscription(ctx, id, "premium")
}
