package alert

import "errors"

// ErrSinkUnavailable wraps a notification delivery failure. It never
// escalates past the sweep iteration that observed it.
var ErrSinkUnavailable = errors.New("notification sink unavailable")
