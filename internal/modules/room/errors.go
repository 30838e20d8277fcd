package room

import "errors"

var ErrValidation = errors.New("validation error")
