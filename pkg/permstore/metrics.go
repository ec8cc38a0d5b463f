package permstore

const (
	MetricRebuild        = "index.rebuild"
	MetricRebuildLatency = "index.rebuild_latency"
	MetricGeneration     = "index.generation"
	MetricApps           = "index.apps"
	MetricRoles          = "index.roles"
	MetricGrants         = "index.grants"
	MetricEntities       = "index.entities"
	MetricRefreshFailed  = "refresh.failed"
)
