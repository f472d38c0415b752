package repositories

import "errors"

// ErrNotFound is returned by all repositories when the requested row
// does not exist (including updates/deletes that affect zero rows).
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert collides with a unique index,
// e.g. two registrations racing on the same email.
var ErrDuplicate = errors.New("duplicate record")
