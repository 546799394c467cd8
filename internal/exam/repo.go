package exam

import "context"

type ListOpts struct {
	PublishedOnly bool
}

type Store interface {
	Insert(ctx context.Context, e Exam) error
	// Get returns the exam with its derived question count. When
	// publishedOnly is set, unpublished exams report as not found.
	Get(ctx context.Context, id string, publishedOnly bool) (Exam, error)
	List(ctx context.Context, opts ListOpts) ([]Exam, error)
	Update(ctx context.Context, e Exam) error
	Delete(ctx context.Context, id string) error
	SetPublished(ctx context.Context, id string, published bool) error
}
