package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/provanota/provanota-backend/internal/question"
	"github.com/provanota/provanota-backend/internal/taxonomy"
)

func SubjectsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"subjects": taxonomy.ValidSubjects})
	}
}

func TopicsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject := taxonomy.NormalizeSubject(chi.URLParam(r, "subject"))
		topics := taxonomy.Topics(subject)
		if topics == nil {
			topics = []string{}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"subject": subject, "topics": topics})
	}
}

// FilterOptionsHandler reports the filter values actually present in
// the bank, for building simulation criteria forms.
func FilterOptionsHandler(bank *question.Bank) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		subjects, err := bank.DistinctValues(ctx, question.FieldSubject)
		if err != nil {
			writeErr(w, err)
			return
		}
		sources, err := bank.DistinctValues(ctx, question.FieldSourceExam)
		if err != nil {
			writeErr(w, err)
			return
		}
		levels, err := bank.DistinctValues(ctx, question.FieldEducationLevel)
		if err != nil {
			writeErr(w, err)
			return
		}
		if len(levels) == 0 {
			levels = taxonomy.EducationLevels
		}
		minYear, maxYear, err := bank.YearRange(ctx)
		if err != nil {
			writeErr(w, err)
			return
		}
		if minYear == 0 && maxYear == 0 {
			minYear, maxYear = 2010, 2024
		}
		total, err := bank.Count(ctx, question.Filter{})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"subjects":         subjects,
			"sources":          sources,
			"education_levels": levels,
			"difficulties":     taxonomy.Difficulties,
			"year_range":       []int{minYear, maxYear},
			"total_questions":  total,
			"valid_subjects":   taxonomy.ValidSubjects,
		})
	}
}

// QuestionCountHandler counts questions matching CSV query filters, so
// the client can preview how many questions a simulation would draw from.
func QuestionCountHandler(bank *question.Bank) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		var f question.Filter
		for _, s := range splitCSV(q.Get("subjects")) {
			f.Subjects = append(f.Subjects, taxonomy.NormalizeSubject(s))
		}
		f.EducationLevel = q.Get("education_level")
		f.Difficulty = q.Get("difficulty")
		f.Sources = splitCSV(q.Get("sources"))
		n, err := bank.Count(r.Context(), f)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"count": n})
	}
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
