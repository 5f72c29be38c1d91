package activity

import "errors"

var (
	ErrInvalidID            = errors.New("activity: invalid id")
	ErrInvalidJobID         = errors.New("activity: invalid job id")
	ErrInvalidCounter       = errors.New("activity: invalid counter")
	ErrActivityNotFound     = errors.New("activity: not found")
	ErrDuplicateWeeklyEntry = errors.New("activity: entry already exists for this job and week")
	ErrInvalidPageSize      = errors.New("activity: invalid page size")
	ErrInvalidPageToken     = errors.New("activity: invalid page token")
)
