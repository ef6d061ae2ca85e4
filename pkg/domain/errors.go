package domain

import "errors"

// ErrItemNotFound is returned when a key cannot be found in the fallback storage.
var ErrItemNotFound = errors.New("item not found")

// ErrSuspendDataTooLarge is returned when encoded suspend data exceeds the dialect limit.
var ErrSuspendDataTooLarge = errors.New("suspend data exceeds dialect limit")

// ErrUnknownDialect is returned when a version string names no supported dialect.
var ErrUnknownDialect = errors.New("unknown SCORM version")
