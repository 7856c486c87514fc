package app

import "errors"

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrSummaryInProgress = errors.New("a summary for this session is already in progress")
	ErrEmptyNote         = errors.New("clinical note must not be empty")
)
