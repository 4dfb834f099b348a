package domain

import "errors"

// ErrUnknownRole is returned when the upstream API reports a role outside
// the closed set.
var ErrUnknownRole = errors.New("unknown role")
