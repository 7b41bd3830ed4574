package server

import (
	"errors"
	"net/http"

	"corkboard/internal/api/dto"
	"corkboard/internal/database"
	"corkboard/internal/moderation"

	"github.com/charmbracelet/log"
)

type errorResponse struct {
	Error  string           `json:"error"`
	Code   string           `json:"code"`
	Fields []dto.FieldError `json:"fields,omitempty"`
}

// writeDomainError translates the moderation error taxonomy into a stable
// code plus message. Anything outside the taxonomy is treated as a store
// failure and reported as unavailable.
func writeDomainError(w http.ResponseWriter, err error) {
	var validationErr *dto.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "validation failed",
			Code:   "validation_failed",
			Fields: validationErr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, database.ErrInvalidPattern):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "invalid_pattern"})
	case errors.Is(err, database.ErrBrandNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Code: "subject_not_found"})
	case errors.Is(err, database.ErrParentNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Code: "parent_not_found"})
	case errors.Is(err, database.ErrCommentNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Code: "not_found"})
	case errors.Is(err, database.ErrRuleNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Code: "not_found"})
	case errors.Is(err, database.ErrParentDeleted):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "parent_deleted"})
	case errors.Is(err, database.ErrNestingTooDeep):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "nesting_too_deep"})
	case errors.Is(err, moderation.ErrBlocked):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error(), Code: "blocked"})
	case errors.Is(err, moderation.ErrAlreadyBlocked), errors.Is(err, database.ErrActiveRuleExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Code: "already_blocked"})
	default:
		log.Error("Unhandled store error", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service unavailable", Code: "unavailable"})
	}
}
