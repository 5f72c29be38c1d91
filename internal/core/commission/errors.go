package commission

import "errors"

var (
	// ErrInvalidInput は年収が負数または数値として不正な場合に返却されます。
	ErrInvalidInput = errors.New("commission: invalid input")
	// ErrInvalidRate は手数料率が不正な場合に返却されます。
	ErrInvalidRate = errors.New("commission: invalid rate")
)
