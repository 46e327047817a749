package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/CamiloBarros/todolist/internal/model"
)

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request, userID int64) {
	tags, err := s.tags.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

func (s *Server) handleGetTag(w http.ResponseWriter, r *http.Request, userID int64) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	tag, err := s.tags.Get(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tag)
}

func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request, userID int64) {
	var draft model.TagDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "malformed request body")
		return
	}

	tag, err := s.tags.Create(r.Context(), userID, draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tag)
}

func (s *Server) handleUpdateTag(w http.ResponseWriter, r *http.Request, userID int64) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var draft model.TagDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "malformed request body")
		return
	}

	tag, err := s.tags.Update(r.Context(), userID, id, draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tag)
}

func (s *Server) handleDeleteTag(w http.ResponseWriter, r *http.Request, userID int64) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.tags.Delete(r.Context(), userID, id, parseForce(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
