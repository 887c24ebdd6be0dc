package user

import "errors"

var ErrInvalidUser = errors.New("user id is required")
