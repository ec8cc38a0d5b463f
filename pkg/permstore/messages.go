package permstore

const (
	starting = "starting"
	stopped  = "stopped"

	indexBuilt          = "index-built"
	failedToRefresh     = "failed-to-refresh"
	failedToObserveTime = "failed-to-observe-rebuild-time"
)
