package sqlx

const (
	starting  = "starting"
	finished  = "finished"
	committed = "committed"
	success   = "success"

	failedToStartTransaction      = "failed-to-start-transaction"
	failedToCommit                = "failed-to-commit"
	failedToRollback              = "failed-to-rollback"
	failedToCreateTable           = "failed-to-create-table"
	failedToApplyMigration        = "failed-to-apply-migration"
	failedToRollbackMigration     = "failed-to-rollback-migration"
	failedToParseAppliedMigration = "failed-to-parse-applied-migration"
	failedToQueryMigrations       = "failed-to-query-migrations"

	retrievedAppliedMigrations = "retrieved-applied-migrations"
	skippedAppliedMigration    = "skipped-applied-migration"
	skippedMissingMigration    = "skipped-missing-migration"

	migrationCountMismatch = "migration-count-mismatch"
	migrationNotFound      = "migration-not-found"
	migrationMismatch      = "migration-mismatch"
)
