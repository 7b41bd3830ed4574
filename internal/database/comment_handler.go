package database

import (
	"context"
	"errors"

	"corkboard/internal/api/dto"
	"corkboard/internal/domain"
	"corkboard/internal/support"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// CreateRootComment persists a new root comment for a brand. The visitor
// password is hashed before it ever reaches the store.
func CreateRootComment(ctx context.Context, brandNm string, req dto.CreateCommentReq, ipAddress, userAgent string) (*domain.Comment, error) {
	if DB == nil {
		return nil, errors.New("database not initialised")
	}

	exists, err := BrandExists(ctx, brandNm)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrBrandNotFound
	}

	hashed, err := support.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	comment := domain.Comment{
		BrandNm:      brandNm,
		Nickname:     req.Nickname,
		PasswordHash: hashed,
		Content:      req.Content,
		IPAddress:    ipAddress,
		UserAgent:    userAgent,
	}
	if err := DB.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// CreateReplyComment persists a reply under a root comment. Threads are one
// level deep: replying to a reply fails with ErrNestingTooDeep regardless of
// the deletion state of anything involved.
func CreateReplyComment(ctx context.Context, parentID string, req dto.CreateCommentReq, ipAddress, userAgent string) (*domain.Comment, error) {
	if DB == nil {
		return nil, errors.New("database not initialised")
	}

	var parent domain.Comment
	err := DB.WithContext(ctx).Where("id = ?", parentID).First(&parent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrParentNotFound
	}
	if err != nil {
		return nil, err
	}

	if parent.ParentID != nil {
		return nil, ErrNestingTooDeep
	}
	if parent.Deleted {
		return nil, ErrParentDeleted
	}

	hashed, err := support.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	comment := domain.Comment{
		BrandNm:      parent.BrandNm,
		ParentID:     &parent.ID,
		Nickname:     req.Nickname,
		PasswordHash: hashed,
		Content:      req.Content,
		IPAddress:    ipAddress,
		UserAgent:    userAgent,
	}
	if err := DB.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListRootComments returns a sanitized page of root comments newest-first,
// each carrying its replies oldest-first. The total counts roots only.
func ListRootComments(ctx context.Context, brandNm string, page dto.PageRequest) ([]dto.RootCommentView, int64, error) {
	if DB == nil {
		return nil, 0, errors.New("database not initialised")
	}

	var (
		roots []domain.Comment
		total int64
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return DB.WithContext(groupCtx).
			Where("brand_nm = ? AND parent_id IS NULL", brandNm).
			Order("created_at DESC").
			Offset(page.Offset()).
			Limit(page.PageSize).
			Preload("Replies", func(db *gorm.DB) *gorm.DB {
				return db.Order("created_at ASC")
			}).
			Find(&roots).Error
	})
	group.Go(func() error {
		return DB.WithContext(groupCtx).
			Model(&domain.Comment{}).
			Where("brand_nm = ? AND parent_id IS NULL", brandNm).
			Count(&total).Error
	})
	if err := group.Wait(); err != nil {
		return nil, 0, err
	}

	views := make([]dto.RootCommentView, 0, len(roots))
	for _, root := range roots {
		views = append(views, SanitizeRoot(root))
	}
	return views, total, nil
}

// SelfDeleteComment soft-deletes a comment after verifying the visitor
// password against the stored hash. The record is kept for the admin view.
func SelfDeleteComment(ctx context.Context, id, password string) error {
	if DB == nil {
		return errors.New("database not initialised")
	}

	var comment domain.Comment
	err := DB.WithContext(ctx).Where("id = ?", id).First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCommentNotFound
	}
	if err != nil {
		return err
	}

	if comment.Deleted {
		return ErrAlreadyDeleted
	}
	if !support.CheckPasswordHash(password, comment.PasswordHash) {
		return ErrWrongPassword
	}

	return DB.WithContext(ctx).
		Model(&comment).
		Update("deleted", true).Error
}

// AdminListComments returns raw comments, including source address and user
// agent, newest-first with optional substring filters.
func AdminListComments(ctx context.Context, filter dto.AdminCommentFilter) ([]domain.Comment, int64, error) {
	if DB == nil {
		return nil, 0, errors.New("database not initialised")
	}

	buildQuery := func() *gorm.DB {
		query := DB.WithContext(ctx).Model(&domain.Comment{})
		if filter.BrandNm != "" {
			query = query.Where("LOWER(brand_nm) LIKE LOWER(?)", "%"+filter.BrandNm+"%")
		}
		if filter.IPAddress != "" {
			query = query.Where("ip_address LIKE ?", "%"+filter.IPAddress+"%")
		}
		return query
	}

	var (
		comments []domain.Comment
		total    int64
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return buildQuery().WithContext(groupCtx).
			Order("created_at DESC").
			Offset(filter.Page.Offset()).
			Limit(filter.Page.PageSize).
			Find(&comments).Error
	})
	group.Go(func() error {
		return buildQuery().WithContext(groupCtx).Count(&total).Error
	})
	if err := group.Wait(); err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// AdminForceDeleteComment soft-deletes without a password. Deleting an
// already-deleted comment is a no-op success; the flag is monotonic so the
// second call changes nothing.
func AdminForceDeleteComment(ctx context.Context, id string) error {
	if DB == nil {
		return errors.New("database not initialised")
	}

	var comment domain.Comment
	err := DB.WithContext(ctx).Where("id = ?", id).First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCommentNotFound
	}
	if err != nil {
		return err
	}

	if comment.Deleted {
		return nil
	}

	return DB.WithContext(ctx).
		Model(&comment).
		Update("deleted", true).Error
}

// GetComment loads one comment with its stored source address, unsanitized.
func GetComment(ctx context.Context, id string) (*domain.Comment, error) {
	if DB == nil {
		return nil, errors.New("database not initialised")
	}

	var comment domain.Comment
	err := DB.WithContext(ctx).Where("id = ?", id).First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// SanitizeComment projects a comment for public consumption: the password
// hash, source address and user agent are dropped, deleted comments show
// the placeholder body with no nickname, and empty nicknames fall back to
// the anonymous label.
func SanitizeComment(comment domain.Comment) dto.CommentView {
	view := dto.CommentView{
		ID:        comment.ID,
		BrandNm:   comment.BrandNm,
		ParentID:  comment.ParentID,
		Nickname:  comment.Nickname,
		Content:   comment.Content,
		IsDeleted: comment.Deleted,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}

	if comment.Deleted {
		view.Content = dto.DeletedPlaceholder
		view.Nickname = ""
	} else if view.Nickname == "" {
		view.Nickname = dto.AnonymousNickname
	}

	return view
}

// SanitizeRoot sanitizes a root comment together with its replies,
// oldest-first as loaded.
func SanitizeRoot(comment domain.Comment) dto.RootCommentView {
	view := dto.RootCommentView{
		CommentView: SanitizeComment(comment),
		Replies:     make([]dto.CommentView, 0, len(comment.Replies)),
	}
	for _, reply := range comment.Replies {
		view.Replies = append(view.Replies, SanitizeComment(reply))
	}
	return view
}

// AdminView projects a comment for the admin listing with the raw body and
// capture metadata intact.
func AdminView(comment domain.Comment) dto.AdminCommentView {
	return dto.AdminCommentView{
		ID:        comment.ID,
		BrandNm:   comment.BrandNm,
		ParentID:  comment.ParentID,
		Nickname:  comment.Nickname,
		Content:   comment.Content,
		IPAddress: comment.IPAddress,
		UserAgent: comment.UserAgent,
		IsDeleted: comment.Deleted,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}
