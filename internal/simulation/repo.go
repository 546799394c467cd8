package simulation

import "context"

type Store interface {
	Insert(ctx context.Context, s Simulation) error
	Get(ctx context.Context, id string) (Simulation, error)
	ListByCreator(ctx context.Context, userID string, limit int) ([]Simulation, error)
	CountByCreator(ctx context.Context, userID string) (int, error)
}
