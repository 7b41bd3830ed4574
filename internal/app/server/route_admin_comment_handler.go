package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"corkboard/internal/api/dto"
	"corkboard/internal/auth"
	"corkboard/internal/database"
	"corkboard/internal/moderation"
)

func adminListComments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := dto.AdminCommentFilter{
		BrandNm:   query.Get("brandNm"),
		IPAddress: query.Get("ipAddress"),
		Page:      dto.PageRequestFromQuery(query),
	}

	comments, total, err := database.AdminListComments(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	views := make([]dto.AdminCommentView, 0, len(comments))
	for _, comment := range comments {
		views = append(views, database.AdminView(comment))
	}

	writeJSON(w, http.StatusOK, dto.AdminCommentPage{
		Comments: views,
		PageInfo: dto.NewPageInfo(total, filter.Page),
	})
}

func adminForceDeleteComment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := database.AdminForceDeleteComment(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}

func blockCommentIP(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	adminID, err := auth.AdminIDFromRequest(r)
	if err != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// The reason body is optional; an empty body means no reason given.
	var req dto.BlockCommentIPReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	rule, err := moderation.PromoteCommentIPToBlock(r.Context(), id, adminID, req.Reason)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, blockRuleView(*rule))
}
