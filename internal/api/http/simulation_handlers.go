package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/provanota/provanota-backend/internal/attempt"
	auth "github.com/provanota/provanota-backend/internal/auth/middleware"
	"github.com/provanota/provanota-backend/internal/simulation"
)

type generateRequest struct {
	Subjects       []string `json:"subjects"`
	Topics         []string `json:"topics"`
	EducationLevel string   `json:"education_level"`
	Difficulty     string   `json:"difficulty"`
	Sources        []string `json:"sources"`
	YearRange      []int    `json:"year_range"`
	Limit          int      `json:"limit" validate:"omitempty,min=1,max=100"`
	Type           string   `json:"type" validate:"omitempty,oneof=custom mixed"`
}

func GenerateSimulationHandler(builder *simulation.Builder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := decodeValid(r, &req); err != nil {
			badRequest(w, err.Error())
			return
		}
		p, _ := auth.PrincipalFromContext(r.Context())
		sim, err := builder.Generate(r.Context(), simulation.Criteria{
			Subjects:       req.Subjects,
			Topics:         req.Topics,
			EducationLevel: req.EducationLevel,
			Difficulty:     req.Difficulty,
			Sources:        req.Sources,
			YearRange:      req.YearRange,
			Limit:          req.Limit,
			Type:           req.Type,
		}, p.ID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sim)
	}
}

func ListMySimulationsHandler(builder *simulation.Builder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := auth.PrincipalFromContext(r.Context())
		sims, err := builder.ListMine(r.Context(), p.ID)
		if err != nil {
			writeErr(w, err)
			return
		}
		if sims == nil {
			sims = []simulation.Simulation{}
		}
		writeJSON(w, http.StatusOK, sims)
	}
}

func GetSimulationHandler(builder *simulation.Builder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := auth.PrincipalFromContext(r.Context())
		sim, err := builder.Get(r.Context(), chi.URLParam(r, "simulationID"), p.ID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sim)
	}
}

func ListSimulationQuestionsHandler(builder *simulation.Builder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := auth.PrincipalFromContext(r.Context())
		qs, err := builder.Questions(r.Context(), chi.URLParam(r, "simulationID"), p.ID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, qs)
	}
}

func CreateSimulationAttemptHandler(attempts *attempt.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := auth.PrincipalFromContext(r.Context())
		a, err := attempts.CreateFromSimulation(r.Context(), chi.URLParam(r, "simulationID"), p.ID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}
