package flags

import (
	"context"
	"io"

	"github.com/orgacl/aclview/pkg/ioutilx"
	"github.com/orgacl/aclview/pkg/logx"
	"github.com/orgacl/aclview/pkg/snapshot"
	"github.com/orgacl/aclview/pkg/snapshot/sqlsource"
)

type SnapshotFlag struct {
	File   ioutilx.FileOrString `long:"file" description:"Snapshot document, as a file path or inline JSON/YAML"`
	Format snapshot.Format      `long:"format" description:"Snapshot document format, detected when empty" choice:"json" choice:"yaml"`
}

// Source prefers the snapshot document and falls back to the database. The
// returned closer releases the database connection, if one was opened.
func (f SnapshotFlag) Source(ctx context.Context, logger logx.Logger, db *DBFlag) (snapshot.Source, io.Closer, error) {
	if f.File != "" {
		return snapshot.NewFileSource(f.File, f.Format), nopCloser{}, nil
	}

	if db == nil || !db.Configured() {
		logger.Error(failedToSelectSource, ErrNoSnapshotSource)
		return nil, nil, ErrNoSnapshotSource
	}

	conn, err := db.Connect(ctx, logger)
	if err != nil {
		return nil, nil, err
	}

	return sqlsource.NewSource(conn), conn, nil
}
