package recruiter

import "errors"

var (
	ErrInvalidID          = errors.New("recruiter: invalid id")
	ErrInvalidName        = errors.New("recruiter: invalid name")
	ErrInvalidEmail       = errors.New("recruiter: invalid email")
	ErrInvalidRole        = errors.New("recruiter: invalid role")
	ErrInvalidJobID       = errors.New("recruiter: invalid job id")
	ErrInvalidPageSize    = errors.New("recruiter: invalid page size")
	ErrInvalidPageToken   = errors.New("recruiter: invalid page token")
	ErrRecruiterNotFound  = errors.New("recruiter: not found")
	ErrEmailAlreadyExists = errors.New("recruiter: email already exists")
)
