package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"corkboard/internal/api/dto"
	"corkboard/internal/database"
	"corkboard/internal/moderation"
	"corkboard/internal/support"

	"github.com/charmbracelet/log"
)

func getBrand(w http.ResponseWriter, r *http.Request) {
	brandNm := r.PathValue("brandNm")

	exists, err := database.BrandExists(r.Context(), brandNm)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !exists {
		writeDomainError(w, database.ErrBrandNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"brandNm": brandNm})
}

func listComments(w http.ResponseWriter, r *http.Request) {
	brandNm := r.PathValue("brandNm")
	page := dto.PageRequestFromQuery(r.URL.Query())

	views, total, err := database.ListRootComments(r.Context(), brandNm, page)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CommentPage{
		Comments: views,
		PageInfo: dto.NewPageInfo(total, page),
	})
}

func createComment(w http.ResponseWriter, r *http.Request) {
	brandNm := r.PathValue("brandNm")

	var req dto.CreateCommentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	comment, err := moderation.SubmitRoot(r.Context(), brandNm, support.ClientIP(r), support.UserAgent(r), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, database.SanitizeRoot(*comment))
}

func createReply(w http.ResponseWriter, r *http.Request) {
	parentID := r.PathValue("id")

	var req dto.CreateCommentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	comment, err := moderation.SubmitReply(r.Context(), parentID, support.ClientIP(r), support.UserAgent(r), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, database.SanitizeComment(*comment))
}

func deleteComment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req dto.DeleteCommentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	err := database.SelfDeleteComment(r.Context(), id, req.Password)
	if err != nil {
		// One opaque answer for wrong id, wrong password and repeat
		// deletion, so callers cannot probe which comments exist.
		if errors.Is(err, database.ErrCommentNotFound) ||
			errors.Is(err, database.ErrAlreadyDeleted) ||
			errors.Is(err, database.ErrWrongPassword) {
			log.Debug("Self-delete rejected", "comment", id, "reason", err)
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "cannot delete comment", Code: "cannot_delete"})
			return
		}
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}
