package attempt

import "context"

type ListOpts struct {
	UserID string
	Status string // optional: in_progress|completed
	Limit  int
	Offset int
}

type Store interface {
	Insert(ctx context.Context, a Attempt) error
	// GetForUser reports not-found for attempts owned by another user.
	GetForUser(ctx context.Context, id, userID string) (Attempt, error)
	List(ctx context.Context, opts ListOpts) ([]Attempt, error)
	// SetAnswer upserts a single answer; last write per question id wins.
	SetAnswer(ctx context.Context, id, questionID, letter string) error
	// Complete freezes the attempt with its score and end time.
	Complete(ctx context.Context, id string, score ScoreRecord, endTime int64) error
}
