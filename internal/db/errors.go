package db

import "errors"

// ErrInvalidRecord is returned when a record cannot be stored as is.
var ErrInvalidRecord = errors.New("invalid analysis record")
