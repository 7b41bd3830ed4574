// Package moderation orchestrates the blocklist gate and the comment store.
// Caller identity and the resolved client address are passed in explicitly;
// nothing here reads ambient request state.
package moderation

import (
	"context"
	"errors"
	"fmt"

	"corkboard/internal/api/dto"
	"corkboard/internal/database"
	"corkboard/internal/domain"

	"github.com/charmbracelet/log"
)

var (
	// ErrBlocked is the gate rejection for write attempts from a blocked
	// address.
	ErrBlocked = errors.New("ip address is blocked")

	// ErrAlreadyBlocked covers both the promotion pre-check and the store
	// level uniqueness conflict, so concurrent promotions of the same
	// address look identical to the caller.
	ErrAlreadyBlocked = errors.New("ip address is already blocked")
)

// SubmitRoot gates a new root comment on the blocklist, then delegates to
// the comment store with the resolved client address stamped on the record.
func SubmitRoot(ctx context.Context, brandNm, ipAddress, userAgent string, req dto.CreateCommentReq) (*domain.Comment, error) {
	blocked, err := database.IsBlocked(ctx, ipAddress)
	if err != nil {
		return nil, err
	}
	if blocked {
		log.Info("Rejected comment from blocked address", "brand", brandNm, "ip", ipAddress)
		return nil, ErrBlocked
	}

	return database.CreateRootComment(ctx, brandNm, req, ipAddress, userAgent)
}

// SubmitReply applies the same gate before creating a reply.
func SubmitReply(ctx context.Context, parentID, ipAddress, userAgent string, req dto.CreateCommentReq) (*domain.Comment, error) {
	blocked, err := database.IsBlocked(ctx, ipAddress)
	if err != nil {
		return nil, err
	}
	if blocked {
		log.Info("Rejected reply from blocked address", "parent", parentID, "ip", ipAddress)
		return nil, ErrBlocked
	}

	return database.CreateReplyComment(ctx, parentID, req, ipAddress, userAgent)
}

// PromoteCommentIPToBlock turns the source address of a comment into an
// exact-match block rule. Only active rules count as duplicates, so a
// deactivated rule for the same address does not prevent re-blocking. The
// pre-check is advisory; the store's uniqueness constraint settles races.
func PromoteCommentIPToBlock(ctx context.Context, commentID, adminID, reason string) (*domain.BlockRule, error) {
	comment, err := database.GetComment(ctx, commentID)
	if err != nil {
		return nil, err
	}

	existing, err := database.FindActiveRuleByPattern(ctx, comment.IPAddress)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyBlocked
	}

	if reason == "" {
		reason = fmt.Sprintf("blocked from comment %s", commentID)
	}

	rule := domain.BlockRule{
		Pattern:   comment.IPAddress,
		Reason:    reason,
		CreatedBy: adminID,
		Active:    true,
	}
	err = database.CreateBlockRule(ctx, &rule)
	if errors.Is(err, database.ErrActiveRuleExists) {
		return nil, ErrAlreadyBlocked
	}
	if err != nil {
		return nil, err
	}

	log.Info("Blocked comment source address", "comment", commentID, "pattern", rule.Pattern, "admin", adminID)
	return &rule, nil
}
