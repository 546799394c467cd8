package user

import "context"

type Store interface {
	Insert(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	SetSubscription(ctx context.Context, id, status string) error
}
