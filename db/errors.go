package db

import "errors"

// ErrNotFound covers both a missing record and a record owned by a
// different user; callers cannot distinguish the two.
var ErrNotFound = errors.New("not found")
