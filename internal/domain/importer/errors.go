package importer

import "errors"

var (
	ErrMalformedInput = errors.New("malformed input")
	ErrTooManyRows    = errors.New("too many rows")
)
