package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"corkboard/internal/api/dto"
	"corkboard/internal/auth"
	"corkboard/internal/database"
	"corkboard/internal/domain"
)

func blockRuleView(rule domain.BlockRule) dto.BlockRuleView {
	return dto.BlockRuleView{
		ID:        rule.ID,
		Pattern:   rule.Pattern,
		Reason:    rule.Reason,
		CreatedBy: rule.CreatedBy,
		CreatedAt: rule.CreatedAt,
		ExpiresAt: rule.ExpiresAt,
		Active:    rule.Active,
	}
}

func createBlockRule(w http.ResponseWriter, r *http.Request) {
	adminID, err := auth.AdminIDFromRequest(r)
	if err != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req dto.CreateBlockRuleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	rule := domain.BlockRule{
		Pattern:   req.Pattern,
		Reason:    req.Reason,
		CreatedBy: adminID,
		ExpiresAt: req.ExpiresAt,
		Active:    true,
	}
	if err := database.CreateBlockRule(r.Context(), &rule); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, blockRuleView(rule))
}

func listBlockRules(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := dto.BlockRuleFilter{
		Pattern: query.Get("pattern"),
		Page:    dto.PageRequestFromQuery(query),
	}
	if raw := query.Get("activeOnly"); raw != "" {
		if activeOnly, err := strconv.ParseBool(raw); err == nil && activeOnly {
			active := true
			filter.Active = &active
		}
	}

	rules, total, err := database.ListBlockRules(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	views := make([]dto.BlockRuleView, 0, len(rules))
	for _, rule := range rules {
		views = append(views, blockRuleView(rule))
	}

	writeJSON(w, http.StatusOK, dto.BlockRulePage{
		Rules:    views,
		PageInfo: dto.NewPageInfo(total, filter.Page),
	})
}

func getBlockRule(w http.ResponseWriter, r *http.Request) {
	rule, err := database.GetBlockRule(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, blockRuleView(*rule))
}

func updateBlockRule(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateBlockRuleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	rule, err := database.UpdateBlockRule(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, blockRuleView(*rule))
}

func deleteBlockRule(w http.ResponseWriter, r *http.Request) {
	if err := database.DeleteBlockRule(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "block rule deleted"})
}
