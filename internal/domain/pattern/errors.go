package pattern

import "errors"

// Work pattern domain errors
var (
	ErrPatternNotFound = errors.New("work pattern not found")
	ErrPatternInUse    = errors.New("work pattern is referenced by staff members and cannot be deleted")
)
