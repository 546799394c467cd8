package question

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/provanota/provanota-backend/internal/apperr"
	"github.com/provanota/provanota-backend/internal/logger"
	"github.com/provanota/provanota-backend/internal/taxonomy"
)

// Bank is the curated question store: insert-time deduplication by
// content fingerprint, filtered queries and random sampling.
type Bank struct {
	store Store
	log   *logger.Logger
}

func NewBank(store Store, log *logger.Logger) *Bank {
	return &Bank{store: store, log: log}
}

// Insert fingerprints q, rejects duplicates and persists it under a
// fresh id. The subject is normalized to its canonical casing first.
func (b *Bank) Insert(ctx context.Context, q Question) (Question, error) {
	if err := validate(q); err != nil {
		return Question{}, err
	}
	q.Subject = taxonomy.NormalizeSubject(q.Subject)
	q.Hash = Fingerprint(q.Statement, q.Alternatives, q.SourceExam, q.Year)

	exists, err := b.store.ExistsByHash(ctx, q.Hash)
	if err != nil {
		return Question{}, err
	}
	if exists {
		return Question{}, apperr.DuplicateContent("question with identical content already exists")
	}

	q.ID = uuid.NewString()
	q.CreatedAt = time.Now().Unix()
	if q.Tags == nil {
		q.Tags = []string{}
	}
	// Insert maps a concurrent fingerprint collision to DuplicateContent
	// via the unique index, so the check above is not a correctness gate.
	if err := b.store.Insert(ctx, q); err != nil {
		return Question{}, err
	}
	return q, nil
}

// CreateForExam inserts a question owned by an exam, assigning the next
// ordinal position within that exam.
func (b *Bank) CreateForExam(ctx context.Context, q Question) (Question, error) {
	if q.ExamID == "" {
		return Question{}, apperr.InvalidQuestion("exam_id is required")
	}
	n, err := b.store.Count(ctx, Filter{ExamID: q.ExamID})
	if err != nil {
		return Question{}, err
	}
	q.Order = n + 1
	if q.Subject == "" {
		q.Subject = q.Area
	}
	if q.EducationLevel == "" {
		q.EducationLevel = taxonomy.LevelVestibular
	}
	return b.Insert(ctx, q)
}

type ImportResult struct {
	Inserted          int      `json:"inserted"`
	SkippedDuplicates int      `json:"skipped_duplicates"`
	Errors            []string `json:"errors,omitempty"`
}

// BulkImport applies Insert to each question in input order. Failures
// are isolated per item: duplicates are counted, other errors recorded,
// and the batch always runs to the end.
func (b *Bank) BulkImport(ctx context.Context, items []Question) ImportResult {
	var res ImportResult
	for i, q := range items {
		if q.EducationLevel == "" {
			q.EducationLevel = taxonomy.LevelVestibular
		}
		_, err := b.Insert(ctx, q)
		switch {
		case err == nil:
			res.Inserted++
		case apperr.Is(err, apperr.KindDuplicateContent):
			res.SkippedDuplicates++
		default:
			res.Errors = append(res.Errors, fmt.Sprintf("question %d: %v", i, err))
		}
	}
	b.log.Info("bulk import finished",
		"inserted", res.Inserted, "skipped", res.SkippedDuplicates, "errors", len(res.Errors))
	return res
}

// Query returns all questions matching the filter. An empty filter
// matches everything.
func (b *Bank) Query(ctx context.Context, f Filter) ([]Question, error) {
	return b.store.List(ctx, f)
}

func (b *Bank) Count(ctx context.Context, f Filter) (int, error) {
	return b.store.Count(ctx, f)
}

// RandomSample draws up to n question ids matching f, uniformly without
// replacement. After sampling it re-verifies that each id still exists
// and silently drops any that vanished in between; a concurrent delete
// must not poison the resulting set.
func (b *Bank) RandomSample(ctx context.Context, f Filter, n int) ([]string, error) {
	ids, err := b.store.SampleIDs(ctx, f, n)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	existing, err := b.store.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(existing) == len(ids) {
		return ids, nil
	}
	b.log.Warn("sampled question ids vanished before use",
		"sampled", len(ids), "existing", len(existing))
	present := make(map[string]bool, len(existing))
	for _, q := range existing {
		present[q.ID] = true
	}
	kept := ids[:0]
	for _, id := range ids {
		if present[id] {
			kept = append(kept, id)
		}
	}
	return kept, nil
}

func (b *Bank) Get(ctx context.Context, id string) (Question, error) {
	return b.store.Get(ctx, id)
}

func (b *Bank) GetByIDs(ctx context.Context, ids []string) ([]Question, error) {
	return b.store.GetByIDs(ctx, ids)
}

// ListByExam returns an exam's questions in their stored ordinal order.
func (b *Bank) ListByExam(ctx context.Context, examID string) ([]Question, error) {
	return b.store.ListByExam(ctx, examID)
}

// Update replaces a question's content while preserving its ordinal and
// content hash (the hash is immutable once created).
func (b *Bank) Update(ctx context.Context, id string, q Question) (Question, error) {
	existing, err := b.store.Get(ctx, id)
	if err != nil {
		return Question{}, err
	}
	if err := validate(q); err != nil {
		return Question{}, err
	}
	q.ID = existing.ID
	q.Order = existing.Order
	q.Hash = existing.Hash
	q.CreatedAt = existing.CreatedAt
	q.Subject = taxonomy.NormalizeSubject(q.Subject)
	if err := b.store.Update(ctx, q); err != nil {
		return Question{}, err
	}
	return b.store.Get(ctx, id)
}

// SetImageURL points a question at an uploaded statement image.
func (b *Bank) SetImageURL(ctx context.Context, id, url string) (Question, error) {
	q, err := b.store.Get(ctx, id)
	if err != nil {
		return Question{}, err
	}
	q.ImageURL = url
	if err := b.store.Update(ctx, q); err != nil {
		return Question{}, err
	}
	return q, nil
}

func (b *Bank) Delete(ctx context.Context, id string) error {
	return b.store.Delete(ctx, id)
}

// DeleteByExam cascades question deletion when an exam is removed.
func (b *Bank) DeleteByExam(ctx context.Context, examID string) error {
	return b.store.DeleteByExam(ctx, examID)
}

// DistinctValues lists the values of a metadata field present in the
// bank (never nil).
func (b *Bank) DistinctValues(ctx context.Context, field string) ([]string, error) {
	vals, err := b.store.Distinct(ctx, field)
	if err != nil {
		return nil, err
	}
	if vals == nil {
		vals = []string{}
	}
	return vals, nil
}

func (b *Bank) YearRange(ctx context.Context) (min, max int, err error) {
	return b.store.YearRange(ctx)
}

func validate(q Question) error {
	if len(q.Alternatives) != len(Letters) {
		return apperr.InvalidQuestion("question must have exactly %d alternatives", len(Letters))
	}
	seen := map[string]bool{}
	for _, a := range q.Alternatives {
		if !ValidLetter(a.Letter) {
			return apperr.InvalidQuestion("invalid alternative letter: %s", a.Letter)
		}
		if seen[a.Letter] {
			return apperr.InvalidQuestion("duplicate alternative letter: %s", a.Letter)
		}
		seen[a.Letter] = true
	}
	if !ValidLetter(q.CorrectAnswer) {
		return apperr.InvalidQuestion("correct_answer must be one of A-E")
	}
	if !taxonomy.ValidDifficulty(q.Difficulty) {
		return apperr.InvalidQuestion("invalid difficulty: %s", q.Difficulty)
	}
	if q.EducationLevel != "" && !taxonomy.ValidEducationLevel(q.EducationLevel) {
		return apperr.InvalidQuestion("invalid education_level: %s", q.EducationLevel)
	}
	return nil
}
