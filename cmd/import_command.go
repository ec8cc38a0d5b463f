package cmd

import (
	"context"

	"github.com/orgacl/aclview/cmd/flags"
	"github.com/orgacl/aclview/pkg/snapshot"
	"github.com/orgacl/aclview/pkg/snapshot/sqlsource"
)

// ImportCommand copies a snapshot document into the database, replacing
// whatever was stored.
type ImportCommand struct {
	Logger flags.LagerFlag

	Snapshot flags.SnapshotFlag `group:"Snapshot" namespace:"snapshot"`
	DB       flags.DBFlag       `group:"DB" namespace:"db"`

	SkipVerify          bool   `long:"skip-verify" description:"Do not check that migrations have been applied first"`
	MigrationsTableName string `long:"migrations-table-name" description:"Name of the table which holds migration information" default:"aclview_migrations"`
}

func (cmd ImportCommand) Execute([]string) error {
	logger, closer, err := cmd.Logger.Logger(component)
	if err != nil {
		return err
	}
	defer closer.Close()

	logger = logger.WithName("import")

	if cmd.Snapshot.File == "" {
		return ErrMissingSnapshotFile
	}

	ctx := context.Background()

	snap, err := snapshot.NewFileSource(cmd.Snapshot.File, cmd.Snapshot.Format).Load(ctx, logger)
	if err != nil {
		logger.Error(failedToLoadSnapshot, err)
		return err
	}

	conn, err := cmd.DB.Connect(ctx, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	if !cmd.SkipVerify {
		if err = verifyMigrations(ctx, logger, conn, cmd.MigrationsTableName); err != nil {
			return err
		}
	}

	if err = sqlsource.Import(ctx, logger, conn, snap); err != nil {
		logger.Error(failedToImportSnapshot, err)
		return err
	}

	return nil
}
