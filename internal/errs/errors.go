// Package errs contains the sentinel errors shared across the application.
package errs

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")
	ErrPersistence    = errors.New("persistence failure")
	ErrDBNotConnected = errors.New("database not connected")
	ErrNilDependency  = errors.New("nil dependency")
)
