package actions

import "errors"

var (
	ErrEmptyName      = errors.New("name must not be empty")
	ErrDisabled       = errors.New("action is not available")
	ErrUnsupported    = errors.New("action does not apply to this item")
	ErrNoModal        = errors.New("no matching modal is open")
	ErrTargetNotFound = errors.New("item no longer exists")
)
