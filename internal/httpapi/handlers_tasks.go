package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/CamiloBarros/todolist/internal/model"
)

type taskPage struct {
	Items      []model.Task     `json:"items"`
	Pagination model.Pagination `json:"pagination"`
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request, userID int64) {
	filter, err := parseTaskFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts := parseListOptions(r)

	items, pagination, err := s.tasks.List(r.Context(), userID, filter, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, taskPage{Items: items, Pagination: pagination})
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request, userID int64) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	item, err := s.tasks.Get(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request, userID int64) {
	var draft model.TaskDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "malformed request body")
		return
	}

	item, err := s.tasks.Create(r.Context(), userID, draft)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request, userID int64) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var patch model.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "VALIDATION_ERROR", "malformed request body")
		return
	}

	item, err := s.tasks.Update(r.Context(), userID, id, patch)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request, userID int64) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.tasks.Delete(r.Context(), userID, id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request, userID int64) {
	aggregates, err := s.stats.Overview(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, aggregates)
}
