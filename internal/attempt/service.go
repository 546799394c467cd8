package attempt

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/provanota/provanota-backend/internal/apperr"
	"github.com/provanota/provanota-backend/internal/exam"
	"github.com/provanota/provanota-backend/internal/logger"
	"github.com/provanota/provanota-backend/internal/question"
	"github.com/provanota/provanota-backend/internal/simulation"
)

// Service is the attempt state machine: in_progress -> completed, no
// other transitions. Answers may only be recorded while in_progress and
// only for questions belonging to the attempt's source.
type Service struct {
	store Store
	bank  *question.Bank
	exams exam.Store
	sims  simulation.Store
	log   *logger.Logger
}

func NewService(store Store, bank *question.Bank, exams exam.Store, sims simulation.Store, log *logger.Logger) *Service {
	return &Service{store: store, bank: bank, exams: exams, sims: sims, log: log}
}

// CreateFromExam starts an attempt on a published exam. The allotted
// duration is the exam's duration in minutes.
func (s *Service) CreateFromExam(ctx context.Context, examID, userID string) (Attempt, error) {
	e, err := s.exams.Get(ctx, examID, true)
	if err != nil {
		return Attempt{}, err
	}
	a := Attempt{
		ID:              uuid.NewString(),
		UserID:          userID,
		ExamID:          examID,
		ExamTitle:       e.Title,
		Mode:            ModeOfficial,
		StartTime:       time.Now().Unix(),
		Status:          StatusInProgress,
		Answers:         map[string]string{},
		DurationSeconds: e.DurationMinutes * 60,
	}
	if err := s.store.Insert(ctx, a); err != nil {
		return Attempt{}, err
	}
	return a, nil
}

// CreateFromSimulation starts an attempt on a simulation owned by the
// requester. Duration defaults to one minute per question.
func (s *Service) CreateFromSimulation(ctx context.Context, simulationID, userID string) (Attempt, error) {
	sim, err := s.sims.Get(ctx, simulationID)
	if err != nil {
		return Attempt{}, err
	}
	if sim.CreatedBy != userID {
		return Attempt{}, apperr.NotFound("simulation not found")
	}
	n := len(sim.QuestionIDs)
	a := Attempt{
		ID:              uuid.NewString(),
		UserID:          userID,
		SimulationID:    simulationID,
		ExamTitle:       fmt.Sprintf("Simulado Personalizado (%d questões)", n),
		Mode:            ModeGenerated,
		StartTime:       time.Now().Unix(),
		Status:          StatusInProgress,
		Answers:         map[string]string{},
		DurationSeconds: n * 60,
	}
	if err := s.store.Insert(ctx, a); err != nil {
		return Attempt{}, err
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, attemptID, userID string) (Attempt, error) {
	return s.store.GetForUser(ctx, attemptID, userID)
}

func (s *Service) ListMine(ctx context.Context, userID string, limit, offset int) ([]Attempt, error) {
	return s.store.List(ctx, ListOpts{UserID: userID, Limit: limit, Offset: offset})
}

// RecordAnswer upserts an answer on an in-progress attempt. The
// question must belong to the attempt's source exam or simulation;
// resubmitting the same question overwrites the prior choice.
func (s *Service) RecordAnswer(ctx context.Context, attemptID, userID, questionID, letter string) error {
	a, err := s.store.GetForUser(ctx, attemptID, userID)
	if err != nil {
		return err
	}
	if a.Status != StatusInProgress {
		return apperr.InvalidState("attempt already completed")
	}
	if !question.ValidLetter(letter) {
		return apperr.InvalidAnswer("invalid answer: must be A, B, C, D or E")
	}
	ok, err := s.belongsToSource(ctx, a, questionID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.InvalidQuestion("question does not belong to this attempt")
	}
	return s.store.SetAnswer(ctx, attemptID, questionID, letter)
}

// Submit scores the attempt against the authoritative question set and
// freezes it. Submitting an already completed attempt fails with an
// invalid-state error and leaves the stored score untouched.
func (s *Service) Submit(ctx context.Context, attemptID, userID string) (Attempt, error) {
	a, err := s.store.GetForUser(ctx, attemptID, userID)
	if err != nil {
		return Attempt{}, err
	}
	if a.Status != StatusInProgress {
		return Attempt{}, apperr.InvalidState("attempt already completed")
	}
	questions, err := s.sourceQuestions(ctx, a)
	if err != nil {
		return Attempt{}, err
	}
	score := Score(questions, a.Answers)
	if err := s.store.Complete(ctx, attemptID, score, time.Now().Unix()); err != nil {
		return Attempt{}, err
	}
	s.log.Info("attempt submitted", "attempt_id", attemptID,
		"correct", score.TotalCorrect, "total", score.TotalQuestions)
	return s.store.GetForUser(ctx, attemptID, userID)
}

func (s *Service) belongsToSource(ctx context.Context, a Attempt, questionID string) (bool, error) {
	switch {
	case a.ExamID != "":
		q, err := s.bank.Get(ctx, questionID)
		if apperr.Is(err, apperr.KindNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return q.ExamID == a.ExamID, nil
	case a.SimulationID != "":
		sim, err := s.sims.Get(ctx, a.SimulationID)
		if err != nil {
			return false, err
		}
		for _, id := range sim.QuestionIDs {
			if id == questionID {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, nil
	}
}

// sourceQuestions resolves the attempt's authoritative question set in
// presentation order: the exam's stored ordinals, or the simulation's
// fixed sampled order.
func (s *Service) sourceQuestions(ctx context.Context, a Attempt) ([]question.Question, error) {
	switch {
	case a.ExamID != "":
		return s.bank.ListByExam(ctx, a.ExamID)
	case a.SimulationID != "":
		sim, err := s.sims.Get(ctx, a.SimulationID)
		if err != nil {
			return nil, err
		}
		qs, err := s.bank.GetByIDs(ctx, sim.QuestionIDs)
		if err != nil {
			return nil, err
		}
		byID := make(map[string]question.Question, len(qs))
		for _, q := range qs {
			byID[q.ID] = q
		}
		ordered := make([]question.Question, 0, len(sim.QuestionIDs))
		for _, id := range sim.QuestionIDs {
			if q, ok := byID[id]; ok {
				ordered = append(ordered, q)
			}
		}
		return ordered, nil
	default:
		return nil, apperr.InvalidState("attempt has no exam or simulation")
	}
}
