package boardfile

import "errors"

// ErrNotConfigured reports that no boards directory is known, which
// disables persistence for the whole session.
var ErrNotConfigured = errors.New("boards directory not configured")
