package dashboard

import "errors"

var (
	ErrInvalidPeriod = errors.New("dashboard: invalid period")
	ErrInvalidStatus = errors.New("dashboard: invalid status")
)
