package service

import (
	"errors"

	"github.com/wricardo/storenav/store/engine"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrInvalidSessionID     = errors.New("invalid session ID")
	ErrConfigNotFound       = errors.New("configuration not found")
	ErrInvalidConfig        = errors.New("invalid configuration")
	ErrStartNotSet          = errors.New("start location not set")
	ErrInvalidStart         = errors.New("start location is outside the store")
	ErrItemNotInList        = errors.New("item is not on the shopping list")

	// ErrItemNotFound is the catalog's unknown-item error
	ErrItemNotFound = engine.ErrItemNotFound
)
