package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/provanota/provanota-backend/internal/attempt"
	"github.com/provanota/provanota-backend/internal/audit"
	auth "github.com/provanota/provanota-backend/internal/auth/middleware"
)

type createAttemptRequest struct {
	ExamID string `json:"exam_id" validate:"required"`
}

type answerRequest struct {
	QuestionID     string `json:"question_id" validate:"required"`
	SelectedAnswer string `json:"selected_answer" validate:"required"`
}

func CreateAttemptHandler(attempts *attempt.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAttemptRequest
		if err := decodeValid(r, &req); err != nil {
			badRequest(w, err.Error())
			return
		}
		p, _ := auth.PrincipalFromContext(r.Context())
		a, err := attempts.CreateFromExam(r.Context(), req.ExamID, p.ID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func GetAttemptHandler(attempts *attempt.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := auth.PrincipalFromContext(r.Context())
		a, err := attempts.Get(r.Context(), chi.URLParam(r, "attemptID"), p.ID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func ListAttemptsHandler(attempts *attempt.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := auth.PrincipalFromContext(r.Context())
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
		if limit <= 0 {
			limit = 50
		}
		list, err := attempts.ListMine(r.Context(), p.ID, limit, skip)
		if err != nil {
			writeErr(w, err)
			return
		}
		if list == nil {
			list = []attempt.Attempt{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func SaveAnswerHandler(attempts *attempt.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req answerRequest
		if err := decodeValid(r, &req); err != nil {
			badRequest(w, err.Error())
			return
		}
		p, _ := auth.PrincipalFromContext(r.Context())
		err := attempts.RecordAnswer(r.Context(), chi.URLParam(r, "attemptID"), p.ID,
			req.QuestionID, req.SelectedAnswer)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "answer saved"})
	}
}

func SubmitAttemptHandler(attempts *attempt.Service, trail *audit.Log) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := auth.PrincipalFromContext(r.Context())
		a, err := attempts.Submit(r.Context(), chi.URLParam(r, "attemptID"), p.ID)
		if err != nil {
			writeErr(w, err)
			return
		}
		// Best effort; a failed trail write must not fail the submit.
		_ = trail.Record(r.Context(), p.ID, "attempt.submit", a.ID, a.Score)
		writeJSON(w, http.StatusOK, a)
	}
}

func ReviewAttemptHandler(attempts *attempt.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := auth.PrincipalFromContext(r.Context())
		rev, err := attempts.Review(r.Context(), chi.URLParam(r, "attemptID"), p.ID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rev)
	}
}

func DashboardHandler(attempts *attempt.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := auth.PrincipalFromContext(r.Context())
		stats, err := attempts.Dashboard(r.Context(), p.ID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}
