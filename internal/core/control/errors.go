package control

import "errors"

var (
	ErrInvalidInput = errors.New("invalid control input")
)
