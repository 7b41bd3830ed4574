package database

import "errors"

// Domain errors surfaced by the store handlers. The HTTP layer maps each of
// these to a stable error code; none of them is fatal.
var (
	ErrInvalidPattern   = errors.New("invalid block pattern")
	ErrRuleNotFound     = errors.New("block rule not found")
	ErrActiveRuleExists = errors.New("an active block rule already exists for this pattern")

	ErrCommentNotFound = errors.New("comment not found")
	ErrParentNotFound  = errors.New("parent comment not found")
	ErrParentDeleted   = errors.New("cannot reply to a deleted comment")
	ErrNestingTooDeep  = errors.New("replies cannot be nested")
	ErrAlreadyDeleted  = errors.New("comment is already deleted")
	ErrWrongPassword   = errors.New("password does not match")

	ErrBrandNotFound = errors.New("brand not found")
)
