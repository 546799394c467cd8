package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provanota/provanota-backend/internal/apperr"
	"github.com/provanota/provanota-backend/internal/logger"
)

type fakeStore struct {
	users map[string]User // by id
}

func newFakeStore() *fakeStore { return &fakeStore{users: map[string]User{}} }

func (s *fakeStore) Insert(_ context.Context, u User) error {
	for _, e := range s.users {
		if e.Email == u.Email {
			return ErrEmailTaken
		}
	}
	s.users[u.ID] = u
	return nil
}

func (s *fakeStore) GetByID(_ context.Context, id string) (User, error) {
	u, ok := s.users[id]
	if !ok {
		return User{}, apperr.NotFound("user not found")
	}
	return u, nil
}

func (s *fakeStore) GetByEmail(_ context.Context, email string) (User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, apperr.NotFound("user not found")
}

func (s *fakeStore) SetSubscription(_ context.Context, id, status string) error {
	u, ok := s.users[id]
	if !ok {
		return apperr.NotFound("user not found")
	}
	u.SubscriptionStatus = status
	s.users[id] = u
	return nil
}

func newService(store Store, adminEmails ...string) *Service {
	isAdmin := func(email string) bool {
		for _, a := range adminEmails {
			if a == email {
				return true
			}
		}
		return false
	}
	return NewService(store, isAdmin, logger.NewNop())
}

func TestRegisterAssignsRoleFromWhitelist(t *testing.T) {
	ctx := context.Background()
	svc := newService(newFakeStore(), "chefe@provanota.com.br")

	student, err := svc.Register(ctx, "  Aluno@Example.com ", "senha-segura", "Aluno")
	require.NoError(t, err)
	assert.Equal(t, "aluno@example.com", student.Email)
	assert.Equal(t, RoleStudent, student.Role)
	assert.Equal(t, "free", student.SubscriptionStatus)
	assert.NotEqual(t, "senha-segura", student.PasswordHash)

	admin, err := svc.Register(ctx, "CHEFE@provanota.com.br", "senha-segura", "Chefe")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, admin.Role)
}

func TestRegisterRejectsTakenEmail(t *testing.T) {
	ctx := context.Background()
	svc := newService(newFakeStore())

	_, err := svc.Register(ctx, "aluno@example.com", "senha-segura", "Aluno")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "ALUNO@example.com", "outra-senha", "Impostor")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := newService(newFakeStore())

	u, err := svc.Register(ctx, "aluno@example.com", "senha-segura", "Aluno")
	require.NoError(t, err)

	got, err := svc.Login(ctx, "Aluno@Example.com", "senha-segura")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Login(ctx, "aluno@example.com", "senha-errada")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown email reports the same error as a wrong password.
	_, err = svc.Login(ctx, "ninguem@example.com", "senha-segura")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpgradeSubscription(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newService(store)

	u, err := svc.Register(ctx, "aluno@example.com", "senha-segura", "Aluno")
	require.NoError(t, err)
	require.NoError(t, svc.UpgradeSubscription(ctx, u.ID))

	got, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "premium", got.SubscriptionStatus)
}
