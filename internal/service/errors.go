package service

import "errors"

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrProblemRequired = errors.New("problem is required")
	ErrCommentEmpty    = errors.New("comment content is required")

	// ErrAuditNotRecorded means the change itself was stored but writing its
	// audit entry failed. The audit write is a separate statement, so the
	// change is not rolled back.
	ErrAuditNotRecorded = errors.New("change saved but audit log entry was not recorded")
)
