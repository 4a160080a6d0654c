package core

import (
	"errors"
)

var (
	ErrNotInitialized = errors.New("subsystem not initialized")
	ErrInvalidCode    = errors.New("event code out of range")
	ErrUnknown        = errors.New("unknown")
)
