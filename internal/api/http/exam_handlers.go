package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/provanota/provanota-backend/internal/exam"
	"github.com/provanota/provanota-backend/internal/question"
)

// Student-facing exam routes: only published exams are visible and
// answer keys never leave the server.

func ListExamsHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exams, err := svc.List(r.Context(), exam.ListOpts{PublishedOnly: true})
		if err != nil {
			writeErr(w, err)
			return
		}
		if exams == nil {
			exams = []exam.Exam{}
		}
		writeJSON(w, http.StatusOK, exams)
	}
}

func GetExamHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.Get(r.Context(), chi.URLParam(r, "examID"), true)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, e)
	}
}

func ListExamQuestionsHandler(svc *exam.Service, bank *question.Bank) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		examID := chi.URLParam(r, "examID")
		if _, err := svc.Get(r.Context(), examID, true); err != nil {
			writeErr(w, err)
			return
		}
		qs, err := bank.ListByExam(r.Context(), examID)
		if err != nil {
			writeErr(w, err)
			return
		}
		out := make([]question.Question, len(qs))
		for i, q := range qs {
			out[i] = q.StudentView()
		}
		writeJSON(w, http.StatusOK, out)
	}
}
