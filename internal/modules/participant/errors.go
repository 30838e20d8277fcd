package participant

import "errors"

var (
	ErrValidation    = errors.New("validation error")
	ErrDuplicateName = errors.New("name already exists")
	ErrNotFound      = errors.New("participant not found")
)
