package exam

// Exam is an official past exam (prova) curated by admins. Only
// published exams are visible or attemptable by students.
type Exam struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Year            int      `json:"year"`
	Banca           string   `json:"banca"` // issuing body
	DurationMinutes int      `json:"duration_minutes"`
	Instructions    string   `json:"instructions"`
	Areas           []string `json:"areas"`
	EducationLevel  string   `json:"education_level"`
	Published       bool     `json:"published"`
	CreatedBy       string   `json:"created_by"`
	CreatedAt       int64    `json:"created_at"`
	QuestionCount   int      `json:"question_count"` // derived
}
