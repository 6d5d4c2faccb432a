package staff

import "errors"

var ErrProfileNotFound = errors.New("staff attendance profile not found")
