package staff

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrUnauthorized     = errors.New("not allowed to perform this operation")
)
