package model

import "github.com/pkg/errors"

var (
	ErrInvalidClimateTable = errors.New("invalid climate table")
	ErrUnknownCollector    = errors.New("unknown collector type")
	ErrInvalidParameters   = errors.New("invalid user parameters")
)
