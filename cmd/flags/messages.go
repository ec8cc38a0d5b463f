package flags

const (
	connected = "connected"

	failedToParseTLSCredentials = "failed-to-parse-tls-credentials"
	failedToOpenSQLConnection   = "failed-to-open-sql-connection"
	failedToConnectToStatsD     = "failed-to-connect-to-statsd"
	failedToReadFile            = "failed-to-read-file"
	failedToSelectSource        = "failed-to-select-snapshot-source"
)
