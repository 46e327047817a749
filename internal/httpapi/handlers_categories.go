package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/CamiloBarros/todolist/internal/model"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request, userID int64) {
	categories, err := s.categories.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request, userID int64) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	category, err := s.categories.Get(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request, userID int64) {
	var draft model.CategoryDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "malformed request body")
		return
	}

	category, err := s.categories.Create(r.Context(), userID, draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request, userID int64) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var draft model.CategoryDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "malformed request body")
		return
	}

	category, err := s.categories.Update(r.Context(), userID, id, draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request, userID int64) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.categories.Delete(r.Context(), userID, id, parseForce(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
