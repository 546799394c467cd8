package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	auth "github.com/provanota/provanota-backend/internal/auth/middleware"
	"github.com/provanota/provanota-backend/internal/exam"
)

type examRequest struct {
	Title           string   `json:"title" validate:"required"`
	Year            int      `json:"year" validate:"required"`
	Banca           string   `json:"banca" validate:"required"`
	DurationMinutes int      `json:"duration_minutes" validate:"required,gt=0"`
	Instructions    string   `json:"instructions"`
	Areas           []string `json:"areas"`
	EducationLevel  string   `json:"education_level"`
}

func (r examRequest) toExam() exam.Exam {
	return exam.Exam{
		Title:           r.Title,
		Year:            r.Year,
		Banca:           r.Banca,
		DurationMinutes: r.DurationMinutes,
		Instructions:    r.Instructions,
		Areas:           r.Areas,
		EducationLevel:  r.EducationLevel,
	}
}

func CreateExamHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req examRequest
		if err := decodeValid(r, &req); err != nil {
			badRequest(w, err.Error())
			return
		}
		p, _ := auth.PrincipalFromContext(r.Context())
		e, err := svc.Create(r.Context(), req.toExam(), p.ID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, e)
	}
}

func ListExamsAdminHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exams, err := svc.List(r.Context(), exam.ListOpts{})
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

func GetExamAdminHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.Get(r.Context(), chi.URLParam(r, "examID"), false)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, e)
	}
}

func UpdateExamHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req examRequest
		if err := decodeValid(r, &req); err != nil {
			badRequest(w, err.Error())
			return
		}
		e, err := svc.Update(r.Context(), chi.URLParam(r, "examID"), req.toExam())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, e)
	}
}

func DeleteExamHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "examID")); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "exam deleted successfully"})
	}
}

func SetExamPublishedHandler(svc *exam.Service, published bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.SetPublished(r.Context(), chi.URLParam(r, "examID"), published); err != nil {
			writeErr(w, err)
			return
		}
		msg := "exam unpublished successfully"
		if published {
			msg = "exam published successfully"
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": msg})
	}
}
