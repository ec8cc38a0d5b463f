package snapshot

import "errors"

var (
	ErrUnsupportedFormat = errors.New("snapshot: unsupported format (use json or yaml)")
)
