package cmd

import (
	"context"

	"github.com/orgacl/aclview/cmd/flags"
	"github.com/orgacl/aclview/internal/migrations"
	"github.com/orgacl/aclview/pkg/logx"
	"github.com/orgacl/aclview/pkg/sqlx"
)

type MigrateCommand struct {
	Logger flags.LagerFlag

	DB flags.DBFlag `group:"DB" namespace:"db"`

	MigrationsTableName string `long:"migrations-table-name" description:"Name of the table which holds migration information" default:"aclview_migrations"`

	Down   bool `long:"down" description:"Roll back the most recent migration instead of applying"`
	All    bool `long:"all" description:"With --down, roll back every applied migration"`
	Verify bool `long:"verify" description:"Only check that every migration has been applied"`
}

func (cmd MigrateCommand) Execute([]string) error {
	logger, closer, err := cmd.Logger.Logger(component)
	if err != nil {
		return err
	}
	defer closer.Close()

	logger = logger.WithName("migrate")

	tableName := cmd.MigrationsTableName
	if tableName == "" {
		tableName = migrations.TableName
	}

	ctx := context.Background()

	conn, err := cmd.DB.Connect(ctx, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	logger.Info(starting)
	defer logger.Info(finished)

	switch {
	case cmd.Verify:
		return verifyMigrations(ctx, logger, conn, tableName)
	case cmd.Down:
		return sqlx.RollbackMigrations(ctx, logger, conn, tableName, migrations.Migrations, cmd.All)
	default:
		if err = sqlx.ApplyMigrations(ctx, logger, conn, tableName, migrations.Migrations); err != nil {
			logger.Error(failedToApplyMigrations, err)
			return err
		}

		return nil
	}
}

func verifyMigrations(ctx context.Context, logger logx.Logger, conn *sqlx.DB, tableName string) error {
	ok, err := sqlx.VerifyAppliedMigrations(ctx, logger, conn, tableName, migrations.Migrations)
	if err != nil {
		logger.Error(failedToVerifyMigrations, err)
		return err
	}

	if !ok {
		logger.Error(migrationsOutOfSync, ErrMigrationsOutOfSync)
		return ErrMigrationsOutOfSync
	}

	return nil
}
