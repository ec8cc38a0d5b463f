// Package permstore serves permission queries from the most recently built
// index and replaces it as new snapshots arrive.
package permstore

import (
	"sync"
	"time"

	"github.com/orgacl/aclview/pkg/acl"
	"github.com/orgacl/aclview/pkg/logx"
	"github.com/orgacl/aclview/pkg/permindex"
	"github.com/orgacl/aclview/pkg/snapshot"
)

// generation bundles an index with the snapshot it was built from. It is
// never modified after it is published.
type generation struct {
	number   uint64
	snapshot snapshot.Snapshot
	index    *permindex.Index
	builtAt  time.Time
}

type Store struct {
	lock    *sync.RWMutex
	current *generation

	opts *options
}

// NewStore returns a store in the loading state: every query answers as if
// the organization had no permissions.
func NewStore(opts ...Option) *Store {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Store{
		lock: &sync.RWMutex{},
		current: &generation{
			index: permindex.Build(nil, nil, o.indexOptions...),
		},
		opts: o,
	}
}

// Update builds a complete index for snap and then publishes it. Readers
// holding the previous generation keep a consistent view.
func (s *Store) Update(logger logx.Logger, snap snapshot.Snapshot) uint64 {
	start := s.opts.clock.Now()
	index := permindex.Build(snap.Permissions, snap.Apps, s.opts.indexOptions...)
	duration := s.opts.clock.Since(start)

	s.lock.Lock()
	next := &generation{
		number:   s.current.number + 1,
		snapshot: snap,
		index:    index,
		builtAt:  start,
	}
	s.current = next
	s.lock.Unlock()

	s.record(logger, next, duration)

	return next.number
}

func (s *Store) record(logger logx.Logger, gen *generation, duration time.Duration) {
	statter := s.opts.statter
	indexStats := gen.index.Stats()

	statter.TimingDuration(MetricRebuild, duration)
	if err := s.opts.histogram.Observe(duration); err != nil {
		logger.Error(failedToObserveTime, err, logx.Data{Key: "duration", Value: duration.String()})
	}
	s.opts.histogram.Report(statter)

	statter.Gauge(MetricGeneration, int64(gen.number))
	statter.Gauge(MetricApps, int64(indexStats.Apps))
	statter.Gauge(MetricRoles, int64(indexStats.Roles))
	statter.Gauge(MetricGrants, int64(indexStats.Grants))
	statter.Gauge(MetricEntities, int64(indexStats.Entities))

	logger.Info(indexBuilt,
		logx.Data{Key: "generation", Value: gen.number},
		logx.Data{Key: "apps", Value: indexStats.Apps},
		logx.Data{Key: "grants", Value: indexStats.Grants},
		logx.Data{Key: "entities", Value: indexStats.Entities},
		logx.Data{Key: "duration", Value: duration.String()},
	)
}

func (s *Store) load() *generation {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.current
}

// Loading is true until the first snapshot has been indexed.
func (s *Store) Loading() bool {
	return s.load().number == 0
}

func (s *Store) Generation() uint64 {
	return s.load().number
}

// BuiltAt is the zero time while loading.
func (s *Store) BuiltAt() time.Time {
	return s.load().builtAt
}

func (s *Store) Snapshot() snapshot.Snapshot {
	return s.load().snapshot
}

// Index returns the current index. Callers issuing several queries should
// use it so all answers come from the same generation.
func (s *Store) Index() *permindex.Index {
	return s.load().index
}

func (s *Store) ByEntity(entityAddress string) []permindex.EntityRole {
	return s.Index().ByEntity(entityAddress)
}

func (s *Store) ByApp(proxyAddress string) []permindex.AppPermission {
	return s.Index().ByApp(proxyAddress)
}

func (s *Store) AppRoles(proxyAddress string) []permindex.AppRole {
	return s.Index().AppRoles(proxyAddress)
}

func (s *Store) AllByEntity() []permindex.EntityRoles {
	return s.Index().AllByEntity()
}

func (s *Store) Resolve(address string) acl.Entity {
	return s.Index().Resolve(address)
}
