package simulation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/provanota/provanota-backend/internal/apperr"
	"github.com/provanota/provanota-backend/internal/logger"
	"github.com/provanota/provanota-backend/internal/question"
	"github.com/provanota/provanota-backend/internal/taxonomy"
)

const (
	TypeCustom = "custom"
	TypeMixed  = "mixed"

	DefaultLimit = 10
	MaxLimit     = 100
)

// Builder turns filter criteria into a persisted simulation: a fixed,
// ordered list of randomly sampled question ids.
type Builder struct {
	store Store
	bank  *question.Bank
	log   *logger.Logger
}

func NewBuilder(store Store, bank *question.Bank, log *logger.Logger) *Builder {
	return &Builder{store: store, bank: bank, log: log}
}

// Generate validates and normalizes the criteria, samples the bank and
// persists the result. The sampled order is authoritative: attempts and
// review present questions in exactly this order.
func (b *Builder) Generate(ctx context.Context, c Criteria, requesterID string) (Simulation, error) {
	f, err := normalizeCriteria(&c)
	if err != nil {
		return Simulation{}, err
	}

	ids, err := b.bank.RandomSample(ctx, f, c.Limit)
	if err != nil {
		return Simulation{}, err
	}
	if len(ids) == 0 {
		return Simulation{}, apperr.InsufficientQuestions("no questions match the selected filters")
	}

	sim := Simulation{
		ID:            uuid.NewString(),
		Type:          c.Type,
		Criteria:      c,
		QuestionIDs:   ids,
		QuestionCount: len(ids),
		CreatedBy:     requesterID,
		CreatedAt:     time.Now().Unix(),
	}
	if err := b.store.Insert(ctx, sim); err != nil {
		return Simulation{}, err
	}
	b.log.Info("simulation generated", "simulation_id", sim.ID, "questions", len(ids))
	return sim, nil
}

// Get returns a simulation owned by the requester. A simulation owned
// by someone else reports as not found so existence does not leak.
func (b *Builder) Get(ctx context.Context, id, requesterID string) (Simulation, error) {
	sim, err := b.store.Get(ctx, id)
	if err != nil {
		return Simulation{}, err
	}
	if sim.CreatedBy != requesterID {
		return Simulation{}, apperr.NotFound("simulation not found")
	}
	return sim, nil
}

func (b *Builder) ListMine(ctx context.Context, requesterID string) ([]Simulation, error) {
	return b.store.ListByCreator(ctx, requesterID, 100)
}

// Questions returns the simulation's questions in sampled order with
// answer keys stripped. Ordinals are assigned from list position.
func (b *Builder) Questions(ctx context.Context, id, requesterID string) ([]question.Question, error) {
	sim, err := b.Get(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}
	qs, err := b.bank.GetByIDs(ctx, sim.QuestionIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]question.Question, len(qs))
	for _, q := range qs {
		byID[q.ID] = q
	}
	out := make([]question.Question, 0, len(sim.QuestionIDs))
	for i, qid := range sim.QuestionIDs {
		q, ok := byID[qid]
		if !ok {
			continue
		}
		q = q.StudentView()
		q.Order = i + 1
		out = append(out, q)
	}
	return out, nil
}

// normalizeCriteria validates categorical values against the taxonomy,
// rewrites subjects to canonical casing in place and returns the bank
// filter the criteria translate to.
func normalizeCriteria(c *Criteria) (question.Filter, error) {
	if c.Limit == 0 {
		c.Limit = DefaultLimit
	}
	if c.Limit < 1 || c.Limit > MaxLimit {
		return question.Filter{}, apperr.InvalidCriteria("limit must be between 1 and %d", MaxLimit)
	}
	if c.Type == "" {
		c.Type = TypeCustom
	}
	if c.Type != TypeCustom && c.Type != TypeMixed {
		return question.Filter{}, apperr.InvalidCriteria("invalid type: %s", c.Type)
	}

	var f question.Filter
	for i, s := range c.Subjects {
		norm := taxonomy.NormalizeSubject(s)
		if !taxonomy.ValidSubject(norm) {
			return question.Filter{}, apperr.InvalidCriteria("invalid subject: %s", norm)
		}
		c.Subjects[i] = norm
	}
	f.Subjects = c.Subjects
	f.Topics = c.Topics
	if c.EducationLevel != "" {
		if !taxonomy.ValidEducationLevel(c.EducationLevel) {
			return question.Filter{}, apperr.InvalidCriteria("invalid education_level: %s", c.EducationLevel)
		}
		f.EducationLevel = c.EducationLevel
	}
	if c.Difficulty != "" {
		if !taxonomy.ValidDifficulty(c.Difficulty) {
			return question.Filter{}, apperr.InvalidCriteria("invalid difficulty: %s", c.Difficulty)
		}
		f.Difficulty = c.Difficulty
	}
	f.Sources = c.Sources
	if len(c.YearRange) == 2 {
		f.YearMin, f.YearMax = c.YearRange[0], c.YearRange[1]
	} else if len(c.YearRange) != 0 {
		return question.Filter{}, apperr.InvalidCriteria("year_range must be [min, max]")
	}
	return f, nil
}
