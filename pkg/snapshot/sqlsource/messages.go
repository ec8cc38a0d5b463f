package sqlsource

const (
	starting = "starting"
	finished = "finished"
	imported = "imported"

	failedToStartTransaction = "failed-to-start-transaction"
	failedToQueryTable       = "failed-to-query-table"
	failedToScanRow          = "failed-to-scan-row"
	failedToValidateSnapshot = "failed-to-validate-snapshot"
	failedToClearTable       = "failed-to-clear-table"
	failedToInsertRow        = "failed-to-insert-row"
	failedToRetrieveID       = "failed-to-retrieve-id"
	failedToEncodeParams     = "failed-to-encode-params"
	failedToDecodeParams     = "failed-to-decode-params"

	skippedOrphanRow = "skipped-orphan-row"
)
