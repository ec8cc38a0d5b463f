package cmd

const (
	starting = "starting"
	finished = "finished"

	failedToFindApp          = "failed-to-find-app"
	failedToLoadSnapshot     = "failed-to-load-snapshot"
	failedToImportSnapshot   = "failed-to-import-snapshot"
	failedToApplyMigrations  = "failed-to-apply-migrations"
	failedToVerifyMigrations = "failed-to-verify-migrations"
	migrationsOutOfSync      = "migrations-out-of-sync"
)
