package exam

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/provanota/provanota-backend/internal/logger"
	"github.com/provanota/provanota-backend/internal/question"
	"github.com/provanota/provanota-backend/internal/taxonomy"
)

// Service covers admin curation of exams. Exams are created unpublished
// and deleting one cascades deletion of its questions.
type Service struct {
	store Store
	bank  *question.Bank
	log   *logger.Logger
}

func NewService(store Store, bank *question.Bank, log *logger.Logger) *Service {
	return &Service{store: store, bank: bank, log: log}
}

func (s *Service) Create(ctx context.Context, e Exam, creatorID string) (Exam, error) {
	e.ID = uuid.NewString()
	if e.EducationLevel == "" {
		e.EducationLevel = taxonomy.LevelVestibular
	}
	e.Published = false
	e.CreatedBy = creatorID
	e.CreatedAt = time.Now().Unix()
	if e.Areas == nil {
		e.Areas = []string{}
	}
	if err := s.store.Insert(ctx, e); err != nil {
		return Exam{}, err
	}
	return e, nil
}

func (s *Service) Get(ctx context.Context, id string, publishedOnly bool) (Exam, error) {
	return s.store.Get(ctx, id, publishedOnly)
}

func (s *Service) List(ctx context.Context, opts ListOpts) ([]Exam, error) {
	return s.store.List(ctx, opts)
}

func (s *Service) Update(ctx context.Context, id string, e Exam) (Exam, error) {
	existing, err := s.store.Get(ctx, id, false)
	if err != nil {
		return Exam{}, err
	}
	e.ID = existing.ID
	e.Published = existing.Published
	e.CreatedBy = existing.CreatedBy
	e.CreatedAt = existing.CreatedAt
	if e.EducationLevel == "" {
		e.EducationLevel = taxonomy.LevelVestibular
	}
	if err := s.store.Update(ctx, e); err != nil {
		return Exam{}, err
	}
	return s.store.Get(ctx, id, false)
}

// Delete removes an exam and all of its questions.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.bank.DeleteByExam(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("exam deleted", "exam_id", id)
	return nil
}

func (s *Service) SetPublished(ctx context.Context, id string, published bool) error {
	return s.store.SetPublished(ctx, id, published)
}
