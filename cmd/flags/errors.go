package flags

import "errors"

var (
	ErrMissingDBHost    = errors.New("missing database host")
	ErrNoSnapshotSource = errors.New("no snapshot source: pass --snapshot-file or --db-host")
)
