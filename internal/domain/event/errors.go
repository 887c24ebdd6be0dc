package event

import "errors"

var (
	ErrEventNotFound  = errors.New("event not found")
	ErrPersonNotFound = errors.New("person not found in event")
	ErrEventClosed    = errors.New("event is no longer active")
	ErrInvalidEvent   = errors.New("invalid event")
	ErrInvalidPerson  = errors.New("invalid person")
	ErrInvalidStatus  = errors.New("invalid status")
)
