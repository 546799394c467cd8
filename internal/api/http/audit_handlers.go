package http

import (
	"net/http"
	"strconv"

	"github.com/provanota/provanota-backend/internal/audit"
)

func AuditLogHandler(log *audit.Log) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		entries, err := log.Recent(r.Context(), limit)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, entries)
	}
}
