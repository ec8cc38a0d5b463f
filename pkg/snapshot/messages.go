package snapshot

const (
	starting = "starting"
	finished = "finished"

	failedToReadSnapshot     = "failed-to-read-snapshot"
	failedToDecodeSnapshot   = "failed-to-decode-snapshot"
	failedToValidateSnapshot = "failed-to-validate-snapshot"
)
