package question

import "context"

// Filter narrows bank queries. All set fields are combined with AND;
// the zero Filter matches every question.
type Filter struct {
	Subjects       []string
	Topics         []string
	EducationLevel string
	Difficulty     string
	Sources        []string
	YearMin        int // inclusive; 0 means unbounded
	YearMax        int // inclusive; 0 means unbounded
	ExamID         string
}

// Distinct fields exposed for metadata queries.
const (
	FieldSubject        = "subject"
	FieldSourceExam     = "source_exam"
	FieldEducationLevel = "education_level"
)

type Store interface {
	Insert(ctx context.Context, q Question) error
	Get(ctx context.Context, id string) (Question, error)
	GetByIDs(ctx context.Context, ids []string) ([]Question, error)
	Update(ctx context.Context, q Question) error
	Delete(ctx context.Context, id string) error
	DeleteByExam(ctx context.Context, examID string) error

	List(ctx context.Context, f Filter) ([]Question, error)
	ListByExam(ctx context.Context, examID string) ([]Question, error) // ordered by exam ordinal
	Count(ctx context.Context, f Filter) (int, error)

	// SampleIDs returns up to n ids drawn uniformly at random from the
	// questions matching f, without replacement.
	SampleIDs(ctx context.Context, f Filter, n int) ([]string, error)

	ExistsByHash(ctx context.Context, hash string) (bool, error)
	Distinct(ctx context.Context, field string) ([]string, error)
	YearRange(ctx context.Context) (min, max int, err error)
}
