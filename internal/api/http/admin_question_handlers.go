package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/provanota/provanota-backend/internal/audit"
	auth "github.com/provanota/provanota-backend/internal/auth/middleware"
	"github.com/provanota/provanota-backend/internal/question"
)

type alternativeDTO struct {
	Letter string `json:"letter" validate:"required,oneof=A B C D E"`
	Text   string `json:"text" validate:"required"`
}

type questionRequest struct {
	ExamID         string           `json:"exam_id"`
	Statement      string           `json:"statement" validate:"required"`
	ImageURL       string           `json:"image_url"`
	Alternatives   []alternativeDTO `json:"alternatives" validate:"required,len=5,dive"`
	CorrectAnswer  string           `json:"correct_answer" validate:"required,oneof=A B C D E"`
	Tags           []string         `json:"tags"`
	Difficulty     string           `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Area           string           `json:"area"`
	Subject        string           `json:"subject"`
	Topic          string           `json:"topic"`
	EducationLevel string           `json:"education_level" validate:"omitempty,oneof=escola vestibular faculdade"`
	SourceExam     string           `json:"source_exam"`
	Year           int              `json:"year"`
}

func (r questionRequest) toQuestion() question.Question {
	alts := make([]question.Alternative, len(r.Alternatives))
	for i, a := range r.Alternatives {
		alts[i] = question.Alternative{Letter: a.Letter, Text: a.Text}
	}
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return question.Question{
		ExamID:         r.ExamID,
		Statement:      r.Statement,
		ImageURL:       r.ImageURL,
		Alternatives:   alts,
		CorrectAnswer:  r.CorrectAnswer,
		Tags:           tags,
		Difficulty:     r.Difficulty,
		Area:           r.Area,
		Subject:        r.Subject,
		Topic:          r.Topic,
		EducationLevel: r.EducationLevel,
		SourceExam:     r.SourceExam,
		Year:           r.Year,
	}
}

// CreateQuestionHandler attaches a new question to an exam, assigning
// the next ordinal within it.
func CreateQuestionHandler(bank *question.Bank) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req questionRequest
		if err := decodeValid(r, &req); err != nil {
			badRequest(w, err.Error())
			return
		}
		q, err := bank.CreateForExam(r.Context(), req.toQuestion())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

// ListExamQuestionsAdminHandler returns an exam's questions with answer
// keys, in ordinal order.
func ListExamQuestionsAdminHandler(bank *question.Bank) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qs, err := bank.ListByExam(r.Context(), chi.URLParam(r, "examID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		if qs == nil {
			qs = []question.Question{}
		}
		writeJSON(w, http.StatusOK, qs)
	}
}

func UpdateQuestionHandler(bank *question.Bank) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req questionRequest
		if err := decodeValid(r, &req); err != nil {
			badRequest(w, err.Error())
			return
		}
		q, err := bank.Update(r.Context(), chi.URLParam(r, "questionID"), req.toQuestion())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

func DeleteQuestionHandler(bank *question.Bank) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := bank.Delete(r.Context(), chi.URLParam(r, "questionID")); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "question deleted successfully"})
	}
}

type importRequest struct {
	Questions []questionRequest `json:"questions" validate:"required,dive"`
}

// ImportQuestionsHandler bulk-inserts questions. Item failures are
// isolated and reported per item; the batch never aborts.
func ImportQuestionsHandler(bank *question.Bank, trail *audit.Log) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req importRequest
		if err := decodeValid(r, &req); err != nil {
			badRequest(w, err.Error())
			return
		}
		items := make([]question.Question, len(req.Questions))
		for i, q := range req.Questions {
			items[i] = q.toQuestion()
		}
		res := bank.BulkImport(r.Context(), items)
		p, _ := auth.PrincipalFromContext(r.Context())
		_ = trail.Record(r.Context(), p.ID, "questions.import", "", res)
		writeJSON(w, http.StatusOK, res)
	}
}
