package handler

import "errors"

var (
	// ErrNilDeps is returned by Init if router or deps are missing.
	ErrNilDeps = errors.New(ErrNilDepsFatalLogMsg)

	// ErrInvalidBody is returned when the request body is not a json object of the expected shape.
	ErrInvalidBody = errors.New("invalid request body")

	// ErrInvalidNumber is returned when a numeric field holds something that is not a number.
	ErrInvalidNumber = errors.New("invalid number")
)
