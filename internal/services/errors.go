package services

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrTicketAccessDenied = errors.New("user may not view this ticket")
	ErrAssetNotFound      = errors.New("asset not found")
	ErrDuplicateSerial    = errors.New("asset with this serial number already exists")
	ErrAssigneeNotFound   = errors.New("assignee does not exist")
	ErrCommentRequired    = errors.New("comment is required")
)
