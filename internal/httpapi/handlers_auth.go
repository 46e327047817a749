package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/CamiloBarros/todolist/internal/auth"
	"github.com/CamiloBarros/todolist/internal/model"
)

type loginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var reg auth.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "malformed request body")
		return
	}

	user, err := s.auth.Register(r.Context(), reg)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds auth.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "malformed request body")
		return
	}

	token, user, err := s.auth.Login(r.Context(), creds)
	if err != nil {
		// Credential failures all read the same to the caller.
		writeErrorCode(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid credentials")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}
