package settings

import "errors"

var (
	ErrUnknownSection = errors.New("unknown settings section")
	ErrUnknownField   = errors.New("unknown settings field")
	ErrNoInstances    = errors.New("section has no instance list")
	ErrLastInstance   = errors.New("cannot remove the last instance")
	ErrInstanceLimit  = errors.New("instance limit reached")
	ErrInstanceIndex  = errors.New("no such instance")
)
