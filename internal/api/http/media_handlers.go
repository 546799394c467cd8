package http

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/provanota/provanota-backend/internal/apperr"
	"github.com/provanota/provanota-backend/internal/media"
	"github.com/provanota/provanota-backend/internal/question"
)

const maxImageBytes = 8 << 20

// UploadQuestionImageHandler stores an uploaded statement image and
// points the question's image_url at it.
func UploadQuestionImageHandler(bank *question.Bank, store media.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxImageBytes); err != nil {
			badRequest(w, "invalid multipart form")
			return
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			badRequest(w, "missing file field")
			return
		}
		defer f.Close()

		ext := strings.ToLower(filepath.Ext(hdr.Filename))
		switch ext {
		case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		default:
			badRequest(w, "unsupported image type")
			return
		}

		key := "questions/" + uuid.NewString() + ext
		if _, err := store.Put(key, f); err != nil {
			writeErr(w, err)
			return
		}
		q, err := bank.SetImageURL(r.Context(), chi.URLParam(r, "questionID"), "/api/media/"+key)
		if err != nil {
			_ = store.Delete(key)
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

func ServeMediaHandler(store media.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "*")
		rc, err := store.Get(key)
		if err != nil {
			writeErr(w, apperr.NotFound("media not found"))
			return
		}
		defer rc.Close()
		if ct := mime.TypeByExtension(filepath.Ext(key)); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		_, _ = io.Copy(w, rc)
	}
}
