package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("config webserver.port listening port can not be 0")

	// ErrEmptyOperator error if the operator username or password is empty.
	ErrEmptyOperator = errors.New("config operator username and password can not be empty")

	// ErrUnknownDBEngine error if db.engine is not one of sqlite, mysql or postgres.
	ErrUnknownDBEngine = errors.New("config db.engine is not supported")

	// ErrUnknownSessionStorage error if webserver.session.storage is not supported.
	ErrUnknownSessionStorage = errors.New("config webserver.session.storage is not supported")
)
