package simulation

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provanota/provanota-backend/internal/apperr"
	"github.com/provanota/provanota-backend/internal/logger"
	"github.com/provanota/provanota-backend/internal/question"
)

// fakeQuestionStore backs a question.Bank with a deterministic sample
// order (insertion order) so tests can assert on ids.
type fakeQuestionStore struct {
	questions map[string]question.Question
	order     []string
}

func newFakeQuestionStore() *fakeQuestionStore {
	return &fakeQuestionStore{questions: map[string]question.Question{}}
}

func (s *fakeQuestionStore) add(q question.Question) {
	s.questions[q.ID] = q
	s.order = append(s.order, q.ID)
}

func (s *fakeQuestionStore) Insert(_ context.Context, q question.Question) error {
	s.add(q)
	return nil
}

func (s *fakeQuestionStore) Get(_ context.Context, id string) (question.Question, error) {
	q, ok := s.questions[id]
	if !ok {
		return question.Question{}, apperr.NotFound("question not found")
	}
	return q, nil
}

func (s *fakeQuestionStore) GetByIDs(_ context.Context, ids []string) ([]question.Question, error) {
	var out []question.Question
	for _, id := range ids {
		if q, ok := s.questions[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *fakeQuestionStore) Update(_ context.Context, q question.Question) error {
	s.questions[q.ID] = q
	return nil
}

func (s *fakeQuestionStore) Delete(_ context.Context, id string) error {
	delete(s.questions, id)
	return nil
}

func (s *fakeQuestionStore) DeleteByExam(_ context.Context, _ string) error { return nil }

func (s *fakeQuestionStore) List(_ context.Context, f question.Filter) ([]question.Question, error) {
	var out []question.Question
	for _, id := range s.order {
		if q, ok := s.questions[id]; ok && s.matches(q, f) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *fakeQuestionStore) ListByExam(_ context.Context, _ string) ([]question.Question, error) {
	return nil, nil
}

func (s *fakeQuestionStore) Count(ctx context.Context, f question.Filter) (int, error) {
	out, _ := s.List(ctx, f)
	return len(out), nil
}

func (s *fakeQuestionStore) SampleIDs(ctx context.Context, f question.Filter, n int) ([]string, error) {
	out, _ := s.List(ctx, f)
	var ids []string
	for _, q := range out {
		ids = append(ids, q.ID)
	}
	if len(ids) > n {
		ids = ids[:n]
	}
	return ids, nil
}

func (s *fakeQuestionStore) ExistsByHash(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (s *fakeQuestionStore) Distinct(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

func (s *fakeQuestionStore) YearRange(_ context.Context) (int, int, error) { return 0, 0, nil }

func (s *fakeQuestionStore) matches(q question.Question, f question.Filter) bool {
	in := func(v string, set []string) bool {
		if len(set) == 0 {
			return true
		}
		for _, x := range set {
			if x == v {
				return true
			}
		}
		return false
	}
	if !in(q.Subject, f.Subjects) || !in(q.SourceExam, f.Sources) {
		return false
	}
	if f.Difficulty != "" && q.Difficulty != f.Difficulty {
		return false
	}
	if f.EducationLevel != "" && q.EducationLevel != f.EducationLevel {
		return false
	}
	if f.YearMin != 0 && q.Year < f.YearMin {
		return false
	}
	if f.YearMax != 0 && q.Year > f.YearMax {
		return false
	}
	return true
}

type fakeSimStore struct {
	sims map[string]Simulation
}

func newFakeSimStore() *fakeSimStore { return &fakeSimStore{sims: map[string]Simulation{}} }

func (s *fakeSimStore) Insert(_ context.Context, sim Simulation) error {
	s.sims[sim.ID] = sim
	return nil
}

func (s *fakeSimStore) Get(_ context.Context, id string) (Simulation, error) {
	sim, ok := s.sims[id]
	if !ok {
		return Simulation{}, apperr.NotFound("simulation not found")
	}
	return sim, nil
}

func (s *fakeSimStore) ListByCreator(_ context.Context, userID string, _ int) ([]Simulation, error) {
	var out []Simulation
	for _, sim := range s.sims {
		if sim.CreatedBy == userID {
			out = append(out, sim)
		}
	}
	return out, nil
}

func (s *fakeSimStore) CountByCreator(_ context.Context, userID string) (int, error) {
	out, _ := s.ListByCreator(context.Background(), userID, 0)
	return len(out), nil
}

func seedMath(qs *fakeQuestionStore, n int) {
	for i := 0; i < n; i++ {
		qs.add(question.Question{
			ID:            fmt.Sprintf("q-%d", i),
			Statement:     fmt.Sprintf("Pergunta %d", i),
			CorrectAnswer: "A",
			Subject:       "Matemática",
			Difficulty:    "medium",
			SourceExam:    "ENEM",
			Year:          2020 + i%4,
		})
	}
}

func newTestBuilder(qs *fakeQuestionStore, ss Store) *Builder {
	log := logger.NewNop()
	return NewBuilder(ss, question.NewBank(qs, log), log)
}

func TestGeneratePersistsSampledOrder(t *testing.T) {
	ctx := context.Background()
	qs := newFakeQuestionStore()
	seedMath(qs, 5)
	ss := newFakeSimStore()
	b := newTestBuilder(qs, ss)

	sim, err := b.Generate(ctx, Criteria{Subjects: []string{"matemática"}, Limit: 3}, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"q-0", "q-1", "q-2"}, sim.QuestionIDs)
	assert.Equal(t, 3, sim.QuestionCount)
	assert.Equal(t, TypeCustom, sim.Type)
	assert.Equal(t, "user-1", sim.CreatedBy)
	assert.Equal(t, []string{"Matemática"}, sim.Criteria.Subjects)

	stored, err := ss.Get(ctx, sim.ID)
	require.NoError(t, err)
	assert.Equal(t, sim.QuestionIDs, stored.QuestionIDs)
}

func TestGenerateDefaultsLimit(t *testing.T) {
	qs := newFakeQuestionStore()
	seedMath(qs, 15)
	b := newTestBuilder(qs, newFakeSimStore())

	sim, err := b.Generate(context.Background(), Criteria{}, "user-1")
	require.NoError(t, err)
	assert.Len(t, sim.QuestionIDs, DefaultLimit)
}

func TestGenerateShortSetAllowed(t *testing.T) {
	// Fewer matches than requested is fine; only zero matches fails.
	qs := newFakeQuestionStore()
	seedMath(qs, 2)
	b := newTestBuilder(qs, newFakeSimStore())

	sim, err := b.Generate(context.Background(), Criteria{Limit: 10}, "user-1")
	require.NoError(t, err)
	assert.Len(t, sim.QuestionIDs, 2)
}

func TestGenerateInsufficientQuestions(t *testing.T) {
	qs := newFakeQuestionStore()
	seedMath(qs, 5)
	b := newTestBuilder(qs, newFakeSimStore())

	_, err := b.Generate(context.Background(), Criteria{Subjects: []string{"Português"}}, "user-1")
	assert.True(t, apperr.Is(err, apperr.KindInsufficientQuestions), "got %v", err)
}

func TestGenerateInvalidCriteria(t *testing.T) {
	b := newTestBuilder(newFakeQuestionStore(), newFakeSimStore())
	ctx := context.Background()

	_, err := b.Generate(ctx, Criteria{Subjects: []string{"Alquimia"}}, "u")
	require.True(t, apperr.Is(err, apperr.KindInvalidCriteria))
	assert.Contains(t, err.Error(), "Alquimia")

	_, err = b.Generate(ctx, Criteria{Difficulty: "brutal"}, "u")
	assert.True(t, apperr.Is(err, apperr.KindInvalidCriteria))

	_, err = b.Generate(ctx, Criteria{EducationLevel: "mestrado"}, "u")
	assert.True(t, apperr.Is(err, apperr.KindInvalidCriteria))

	_, err = b.Generate(ctx, Criteria{Limit: MaxLimit + 1}, "u")
	assert.True(t, apperr.Is(err, apperr.KindInvalidCriteria))

	_, err = b.Generate(ctx, Criteria{YearRange: []int{2020}}, "u")
	assert.True(t, apperr.Is(err, apperr.KindInvalidCriteria))

	_, err = b.Generate(ctx, Criteria{Type: "marathon"}, "u")
	assert.True(t, apperr.Is(err, apperr.KindInvalidCriteria))
}

func TestGetHidesForeignSimulations(t *testing.T) {
	ctx := context.Background()
	qs := newFakeQuestionStore()
	seedMath(qs, 3)
	ss := newFakeSimStore()
	b := newTestBuilder(qs, ss)

	sim, err := b.Generate(ctx, Criteria{Limit: 2}, "owner")
	require.NoError(t, err)

	_, err = b.Get(ctx, sim.ID, "intruder")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	got, err := b.Get(ctx, sim.ID, "owner")
	require.NoError(t, err)
	assert.Equal(t, sim.ID, got.ID)
}

func TestQuestionsStripAnswersAndKeepOrder(t *testing.T) {
	ctx := context.Background()
	qs := newFakeQuestionStore()
	seedMath(qs, 4)
	ss := newFakeSimStore()
	b := newTestBuilder(qs, ss)

	sim, err := b.Generate(ctx, Criteria{Limit: 3}, "user-1")
	require.NoError(t, err)

	// A question deleted after generation is skipped, not an error.
	require.NoError(t, qs.Delete(ctx, sim.QuestionIDs[1]))

	out, err := b.Questions(ctx, sim.ID, "user-1")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, sim.QuestionIDs[0], out[0].ID)
	assert.Equal(t, sim.QuestionIDs[2], out[1].ID)
	for _, q := range out {
		assert.Empty(t, q.CorrectAnswer)
		assert.Empty(t, q.Hash)
	}
	assert.Equal(t, 1, out[0].Order)
	assert.Equal(t, 3, out[1].Order)
}
