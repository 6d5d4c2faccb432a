package settings

import "errors"

var ErrSettingsNotFound = errors.New("organization attendance settings not found")
