package question

type Alternative struct {
	Letter string `json:"letter"`
	Text   string `json:"text"`
}

// Question is a single multiple-choice item in the bank. Exactly five
// alternatives lettered A–E; CorrectAnswer is one of those letters.
// Hash is derived at insert time and never changes afterwards.
type Question struct {
	ID             string        `json:"id"`
	ExamID         string        `json:"exam_id,omitempty"`
	Statement      string        `json:"statement"`
	ImageURL       string        `json:"image_url,omitempty"`
	Alternatives   []Alternative `json:"alternatives"`
	CorrectAnswer  string        `json:"correct_answer"`
	Tags           []string      `json:"tags"`
	Difficulty     string        `json:"difficulty"`
	Area           string        `json:"area,omitempty"`
	Order          int           `json:"order"` // position inside the owning exam; 0 when standalone
	Subject        string        `json:"subject,omitempty"`
	Topic          string        `json:"topic,omitempty"`
	EducationLevel string        `json:"education_level"`
	SourceExam     string        `json:"source_exam,omitempty"`
	Year           int           `json:"year,omitempty"`
	Hash           string        `json:"question_hash,omitempty"`
	CreatedAt      int64         `json:"created_at,omitempty"`
}

// StudentView strips the fields students must not see while answering.
func (q Question) StudentView() Question {
	q.CorrectAnswer = ""
	q.Hash = ""
	return q
}

// Letters accepted as answers.
var Letters = []string{"A", "B", "C", "D", "E"}

func ValidLetter(l string) bool {
	for _, v := range Letters {
		if v == l {
			return true
		}
	}
	return false
}
