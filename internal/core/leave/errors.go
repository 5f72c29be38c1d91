package leave

import "errors"

var (
	ErrInvalidEmployeeID = errors.New("leave: invalid employee id")
	ErrInvalidType       = errors.New("leave: invalid leave type")
	ErrInvalidDate       = errors.New("leave: invalid date")
	ErrInvalidDateRange  = errors.New("leave: end date is before start date")
)
