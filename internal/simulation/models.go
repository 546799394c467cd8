package simulation

// Criteria is the filter vocabulary a student submits to generate a
// simulation. It is persisted post-normalization alongside the result.
type Criteria struct {
	Subjects       []string `json:"subjects,omitempty"`
	Topics         []string `json:"topics,omitempty"`
	EducationLevel string   `json:"education_level,omitempty"`
	Difficulty     string   `json:"difficulty,omitempty"`
	Sources        []string `json:"sources,omitempty"`
	YearRange      []int    `json:"year_range,omitempty"` // [min, max] inclusive
	Limit          int      `json:"limit"`
	Type           string   `json:"type"` // custom|mixed
}

// Simulation is an ad-hoc, criteria-filtered, randomly sampled question
// set. QuestionIDs is fixed at creation; its order is the presentation
// order for attempts and review.
type Simulation struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"`
	Criteria      Criteria `json:"criteria"`
	QuestionIDs   []string `json:"question_ids"`
	QuestionCount int      `json:"question_count"` // derived
	CreatedBy     string   `json:"created_by"`
	CreatedAt     int64    `json:"created_at"`
}
