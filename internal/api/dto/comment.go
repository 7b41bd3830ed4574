package dto

import "time"

const (
	maxNicknameLength = 20
	minPasswordLength = 4
	maxPasswordLength = 20
	maxContentLength  = 1000
	maxReasonLength   = 200

	// DeletedPlaceholder replaces the body of a soft-deleted comment in
	// sanitized output.
	DeletedPlaceholder = "This comment has been deleted."

	// AnonymousNickname is shown when a visitor left the nickname empty.
	AnonymousNickname = "anonymous"
)

// CreateCommentReq is the public payload for roots and replies alike.
type CreateCommentReq struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
	Content  string `json:"content"`
}

func (r CreateCommentReq) Validate() error {
	var fields []FieldError

	if len(r.Nickname) > maxNicknameLength {
		fields = append(fields, FieldError{Field: "nickname", Message: "must be at most 20 characters"})
	}
	if r.Password == "" {
		fields = append(fields, FieldError{Field: "password", Message: "is required"})
	} else if len(r.Password) < minPasswordLength || len(r.Password) > maxPasswordLength {
		fields = append(fields, FieldError{Field: "password", Message: "must be between 4 and 20 characters"})
	}
	if r.Content == "" {
		fields = append(fields, FieldError{Field: "content", Message: "is required"})
	} else if len(r.Content) > maxContentLength {
		fields = append(fields, FieldError{Field: "content", Message: "must be at most 1000 characters"})
	}

	return validationError(fields)
}

type DeleteCommentReq struct {
	Password string `json:"password"`
}

func (r DeleteCommentReq) Validate() error {
	var fields []FieldError
	if r.Password == "" {
		fields = append(fields, FieldError{Field: "password", Message: "is required"})
	}
	return validationError(fields)
}

type BlockCommentIPReq struct {
	Reason string `json:"reason"`
}

func (r BlockCommentIPReq) Validate() error {
	var fields []FieldError
	if len(r.Reason) > maxReasonLength {
		fields = append(fields, FieldError{Field: "reason", Message: "must be at most 200 characters"})
	}
	return validationError(fields)
}

// CommentView is the sanitized public projection of a comment. Password
// hashes, source addresses and user agents never appear here; deleted
// comments carry the placeholder body and no nickname.
type CommentView struct {
	ID        string    `json:"id"`
	BrandNm   string    `json:"brandNm"`
	ParentID  *string   `json:"parentId"`
	Nickname  string    `json:"nickname"`
	Content   string    `json:"content"`
	IsDeleted bool      `json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RootCommentView is a root comment with its replies. Threads are capped at
// one level, so replies are plain CommentViews and never nest further.
type RootCommentView struct {
	CommentView
	Replies []CommentView `json:"replies"`
}

// CommentPage is the public listing envelope.
type CommentPage struct {
	Comments []RootCommentView `json:"comments"`
	PageInfo
}

// AdminCommentView is the unsanitized projection, admin listing only.
type AdminCommentView struct {
	ID        string    `json:"id"`
	BrandNm   string    `json:"brandNm"`
	ParentID  *string   `json:"parentId"`
	Nickname  string    `json:"nickname"`
	Content   string    `json:"content"`
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	IsDeleted bool      `json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AdminCommentPage struct {
	Comments []AdminCommentView `json:"comments"`
	PageInfo
}

// AdminCommentFilter narrows the admin listing by substring match.
type AdminCommentFilter struct {
	BrandNm   string
	IPAddress string
	Page      PageRequest
}
