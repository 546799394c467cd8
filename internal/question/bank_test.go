package question

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provanota/provanota-backend/internal/apperr"
	"github.com/provanota/provanota-backend/internal/logger"
)

// fakeStore is an in-memory Store for exercising Bank without a DB.
type fakeStore struct {
	mu        sync.Mutex
	questions map[string]Question
	order     []string
	phantoms  []string // ids SampleIDs reports even though no row exists
}

func newFakeStore() *fakeStore {
	return &fakeStore{questions: map[string]Question{}}
}

func (s *fakeStore) Insert(_ context.Context, q Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.questions {
		if e.Hash == q.Hash {
			return apperr.DuplicateContent("question with identical content already exists")
		}
	}
	s.questions[q.ID] = q
	s.order = append(s.order, q.ID)
	return nil
}

func (s *fakeStore) Get(_ context.Context, id string) (Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[id]
	if !ok {
		return Question{}, apperr.NotFound("question not found")
	}
	return q, nil
}

func (s *fakeStore) GetByIDs(_ context.Context, ids []string) ([]Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Question
	for _, id := range ids {
		if q, ok := s.questions[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *fakeStore) Update(_ context.Context, q Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[q.ID]; !ok {
		return apperr.NotFound("question not found")
	}
	s.questions[q.ID] = q
	return nil
}

func (s *fakeStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[id]; !ok {
		return apperr.NotFound("question not found")
	}
	delete(s.questions, id)
	return nil
}

func (s *fakeStore) DeleteByExam(_ context.Context, examID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, q := range s.questions {
		if q.ExamID == examID {
			delete(s.questions, id)
		}
	}
	return nil
}

func (s *fakeStore) List(_ context.Context, f Filter) ([]Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Question
	for _, id := range s.order {
		if q, ok := s.questions[id]; ok && matches(q, f) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *fakeStore) ListByExam(_ context.Context, examID string) ([]Question, error) {
	out, _ := s.List(context.Background(), Filter{ExamID: examID})
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (s *fakeStore) Count(_ context.Context, f Filter) (int, error) {
	out, _ := s.List(context.Background(), f)
	return len(out), nil
}

func (s *fakeStore) SampleIDs(_ context.Context, f Filter, n int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for _, id := range s.order {
		if q, ok := s.questions[id]; ok && matches(q, f) {
			ids = append(ids, id)
		}
	}
	ids = append(ids, s.phantoms...)
	if len(ids) > n {
		ids = ids[:n]
	}
	return ids, nil
}

func (s *fakeStore) ExistsByHash(_ context.Context, hash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.questions {
		if q.Hash == hash {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) Distinct(_ context.Context, field string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, id := range s.order {
		q, ok := s.questions[id]
		if !ok {
			continue
		}
		var v string
		switch field {
		case FieldSubject:
			v = q.Subject
		case FieldSourceExam:
			v = q.SourceExam
		case FieldEducationLevel:
			v = q.EducationLevel
		}
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *fakeStore) YearRange(_ context.Context) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	min, max := 0, 0
	for _, q := range s.questions {
		if q.Year == 0 {
			continue
		}
		if min == 0 || q.Year < min {
			min = q.Year
		}
		if q.Year > max {
			max = q.Year
		}
	}
	return min, max, nil
}

func matches(q Question, f Filter) bool {
	in := func(v string, set []string) bool {
		if len(set) == 0 {
			return true
		}
		for _, s := range set {
			if s == v {
				return true
			}
		}
		return false
	}
	if !in(q.Subject, f.Subjects) || !in(q.Topic, f.Topics) || !in(q.SourceExam, f.Sources) {
		return false
	}
	if f.EducationLevel != "" && q.EducationLevel != f.EducationLevel {
		return false
	}
	if f.Difficulty != "" && q.Difficulty != f.Difficulty {
		return false
	}
	if f.ExamID != "" && q.ExamID != f.ExamID {
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

func validQuestion(statement string) Question {
	return Question{
		Statement:      statement,
		Alternatives:   alts("um", "dois", "três", "quatro", "cinco"),
		CorrectAnswer:  "B",
		Difficulty:     "medium",
		Subject:        "Matemática",
		EducationLevel: "vestibular",
		SourceExam:     "ENEM",
		Year:           2023,
	}
}

func newBank(store Store) *Bank {
	return NewBank(store, logger.NewNop())
}

func TestInsertRejectsDuplicateContent(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	bank := newBank(store)

	first, err := bank.Insert(ctx, validQuestion("Quanto é 2+2?"))
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.NotEmpty(t, first.Hash)

	// Same content modulo whitespace and casing.
	dup := validQuestion("  quanto  é 2+2? ")
	dup.SourceExam = "enem"
	_, err = bank.Insert(ctx, dup)
	assert.True(t, apperr.Is(err, apperr.KindDuplicateContent), "got %v", err)

	n, _ := bank.Count(ctx, Filter{})
	assert.Equal(t, 1, n)
}

func TestInsertNormalizesSubject(t *testing.T) {
	ctx := context.Background()
	bank := newBank(newFakeStore())

	q := validQuestion("Pergunta")
	q.Subject = "matemática"
	got, err := bank.Insert(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, "Matemática", got.Subject)
	assert.NotNil(t, got.Tags)
}

func TestInsertValidation(t *testing.T) {
	ctx := context.Background()
	bank := newBank(newFakeStore())

	q := validQuestion("Pergunta")
	q.Alternatives = q.Alternatives[:4]
	_, err := bank.Insert(ctx, q)
	assert.True(t, apperr.Is(err, apperr.KindInvalidQuestion))

	q = validQuestion("Pergunta")
	q.CorrectAnswer = "F"
	_, err = bank.Insert(ctx, q)
	assert.True(t, apperr.Is(err, apperr.KindInvalidQuestion))

	q = validQuestion("Pergunta")
	q.Difficulty = "impossible"
	_, err = bank.Insert(ctx, q)
	assert.True(t, apperr.Is(err, apperr.KindInvalidQuestion))

	q = validQuestion("Pergunta")
	q.Alternatives[4].Letter = "A"
	_, err = bank.Insert(ctx, q)
	assert.True(t, apperr.Is(err, apperr.KindInvalidQuestion))
}

func TestCreateForExamAssignsOrdinals(t *testing.T) {
	ctx := context.Background()
	bank := newBank(newFakeStore())

	q1 := validQuestion("Primeira")
	q1.ExamID = "exam-1"
	q1.Subject = ""
	q1.Area = "Matemática e suas Tecnologias"
	q1.EducationLevel = ""
	got1, err := bank.CreateForExam(ctx, q1)
	require.NoError(t, err)
	assert.Equal(t, 1, got1.Order)
	assert.Equal(t, "Matemática E Suas Tecnologias", got1.Subject)
	assert.Equal(t, "vestibular", got1.EducationLevel)

	q2 := validQuestion("Segunda")
	q2.ExamID = "exam-1"
	got2, err := bank.CreateForExam(ctx, q2)
	require.NoError(t, err)
	assert.Equal(t, 2, got2.Order)

	_, err = bank.CreateForExam(ctx, validQuestion("Sem exame"))
	assert.True(t, apperr.Is(err, apperr.KindInvalidQuestion))
}

func TestBulkImportIsolatesFailures(t *testing.T) {
	ctx := context.Background()
	bank := newBank(newFakeStore())

	bad := validQuestion("Quebrada")
	bad.CorrectAnswer = "Z"
	items := []Question{
		validQuestion("Pergunta um"),
		validQuestion("pergunta  UM"), // duplicate of the first
		bad,
		validQuestion("Pergunta dois"),
	}
	res := bank.BulkImport(ctx, items)
	assert.Equal(t, 2, res.Inserted)
	assert.Equal(t, 1, res.SkippedDuplicates)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "question 2")

	n, _ := bank.Count(ctx, Filter{})
	assert.Equal(t, 2, n)
}

func TestRandomSampleDropsVanishedIDs(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	bank := newBank(store)

	a, err := bank.Insert(ctx, validQuestion("Pergunta um"))
	require.NoError(t, err)
	b, err := bank.Insert(ctx, validQuestion("Pergunta dois"))
	require.NoError(t, err)
	store.phantoms = []string{"gone-1"}

	ids, err := bank.RandomSample(ctx, Filter{}, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, b.ID}, ids)
}

func TestRandomSampleRespectsLimitAndFilter(t *testing.T) {
	ctx := context.Background()
	bank := newBank(newFakeStore())

	for _, stmt := range []string{"p1", "p2", "p3"} {
		q := validQuestion(stmt)
		_, err := bank.Insert(ctx, q)
		require.NoError(t, err)
	}
	hist := validQuestion("p4")
	hist.Subject = "História"
	_, err := bank.Insert(ctx, hist)
	require.NoError(t, err)

	ids, err := bank.RandomSample(ctx, Filter{Subjects: []string{"Matemática"}}, 2)
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	ids, err = bank.RandomSample(ctx, Filter{Subjects: []string{"Física"}}, 2)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestUpdatePreservesIdentityFields(t *testing.T) {
	ctx := context.Background()
	bank := newBank(newFakeStore())

	orig := validQuestion("Pergunta original")
	orig.ExamID = "exam-1"
	inserted, err := bank.CreateForExam(ctx, orig)
	require.NoError(t, err)

	upd := validQuestion("Enunciado corrigido")
	upd.CorrectAnswer = "C"
	got, err := bank.Update(ctx, inserted.ID, upd)
	require.NoError(t, err)
	assert.Equal(t, inserted.ID, got.ID)
	assert.Equal(t, inserted.Order, got.Order)
	assert.Equal(t, inserted.Hash, got.Hash)
	assert.Equal(t, inserted.CreatedAt, got.CreatedAt)
	assert.Equal(t, "Enunciado corrigido", got.Statement)
	assert.Equal(t, "C", got.CorrectAnswer)
}
