package attempt

import (
	"context"
	"math"
)

type DashboardStats struct {
	TotalCompleted     int      `json:"total_completed"`
	AverageScore       float64  `json:"average_score"`
	SimulationsCreated int      `json:"simulations_created"`
	LastAttempt        *Attempt `json:"last_attempt,omitempty"`
	InProgress         *Attempt `json:"in_progress,omitempty"`
}

// Dashboard aggregates a user's study history: completed attempt count,
// average overall percentage, simulations created, the most recent
// completed attempt and any attempt still in progress.
func (s *Service) Dashboard(ctx context.Context, userID string) (DashboardStats, error) {
	completed, err := s.store.List(ctx, ListOpts{UserID: userID, Status: StatusCompleted, Limit: 100})
	if err != nil {
		return DashboardStats{}, err
	}
	inProgress, err := s.store.List(ctx, ListOpts{UserID: userID, Status: StatusInProgress, Limit: 1})
	if err != nil {
		return DashboardStats{}, err
	}
	simCount, err := s.sims.CountByCreator(ctx, userID)
	if err != nil {
		return DashboardStats{}, err
	}

	stats := DashboardStats{
		TotalCompleted:     len(completed),
		SimulationsCreated: simCount,
	}
	if len(completed) > 0 {
		sum := 0.0
		for _, a := range completed {
			if a.Score != nil {
				sum += a.Score.Percentage
			}
		}
		stats.AverageScore = math.Round(sum/float64(len(completed))*10) / 10
		stats.LastAttempt = &completed[0]
	}
	if len(inProgress) > 0 {
		stats.InProgress = &inProgress[0]
	}
	return stats, nil
}
