package joborder

import "errors"

var (
	ErrInvalidID         = errors.New("joborder: invalid id")
	ErrInvalidClientName = errors.New("joborder: invalid client name")
	ErrInvalidJobTitle   = errors.New("joborder: invalid job title")
	ErrInvalidStatus     = errors.New("joborder: invalid status")
	ErrInvalidPriority   = errors.New("joborder: invalid priority")
	ErrInvalidDateRange  = errors.New("joborder: due date before received date")
	ErrInvalidPageSize   = errors.New("joborder: invalid page size")
	ErrInvalidPageToken  = errors.New("joborder: invalid page token")
	ErrJobOrderNotFound  = errors.New("joborder: not found")
)
