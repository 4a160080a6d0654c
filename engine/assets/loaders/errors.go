package loaders

import "errors"

var (
	ErrEmptyModel  = errors.New("model file has no content")
	ErrSyntax      = errors.New("syntax error")
	ErrIndexRange  = errors.New("face index out of range")
	ErrUnsupported = errors.New("unsupported model kind")
)
