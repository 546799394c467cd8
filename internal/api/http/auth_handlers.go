package http

import (
	"net/http"

	auth "github.com/provanota/provanota-backend/internal/auth/middleware"
	"github.com/provanota/provanota-backend/internal/user"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"` // bcrypt effective limit ~72 bytes
	Name     string `json:"name" validate:"required,min=2,max=80"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string    `json:"token"`
	User  user.User `json:"user"`
}

func RegisterHandler(users *user.Service, authSvc *auth.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := decodeValid(r, &req); err != nil {
			badRequest(w, err.Error())
			return
		}
		u, err := users.Register(r.Context(), req.Email, req.Password, req.Name)
		if err != nil {
			writeErr(w, err)
			return
		}
		tok, err := authSvc.IssueJWT(u.ID, u.Role)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, authResponse{Token: tok, User: u})
	}
}

func LoginHandler(users *user.Service, authSvc *auth.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeValid(r, &req); err != nil {
			badRequest(w, err.Error())
			return
		}
		u, err := users.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeErr(w, err)
			return
		}
		tok, err := authSvc.IssueJWT(u.ID, u.Role)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, authResponse{Token: tok, User: u})
	}
}

func MeHandler(users *user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := auth.PrincipalFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		u, err := users.Get(r.Context(), p.ID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

func UpgradeSubscriptionHandler(users *user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := auth.PrincipalFromContext(r.Context())
		if err := users.UpgradeSubscription(r.Context(), p.ID); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "subscription updated to premium"})
	}
}
