package app

import "errors"

// ErrNoFilePath reports that the board has no backing file, which happens
// before storage is initialized or when persistence is disabled.
var ErrNoFilePath = errors.New("no board file path set")
