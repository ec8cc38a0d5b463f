package permstore

import (
	"context"
	"time"

	"github.com/orgacl/aclview/pkg/logx"
	"github.com/orgacl/aclview/pkg/snapshot"
)

// Refresher keeps a Store in sync with a snapshot source by polling it.
type Refresher struct {
	store    *Store
	source   snapshot.Source
	interval time.Duration
}

func NewRefresher(store *Store, source snapshot.Source, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	return &Refresher{
		store:    store,
		source:   source,
		interval: interval,
	}
}

// Refresh loads the source once. On failure the store keeps serving the
// generation it already has.
func (r *Refresher) Refresh(ctx context.Context, logger logx.Logger) error {
	snap, err := r.source.Load(ctx, logger)
	if err != nil {
		logger.Error(failedToRefresh, err, logx.Data{Key: "generation", Value: r.store.Generation()})
		r.store.opts.statter.Inc(MetricRefreshFailed, 1)
		return err
	}

	r.store.Update(logger, snap)
	return nil
}

// Run refreshes immediately and then on every tick until ctx is done.
func (r *Refresher) Run(ctx context.Context, logger logx.Logger) {
	logger = logger.WithName("refresher").WithData(logx.Data{Key: "interval", Value: r.interval.String()})
	logger.Info(starting)
	defer logger.Info(stopped)

	_ = r.Refresh(ctx, logger)

	ticker := r.store.opts.clock.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			_ = r.Refresh(ctx, logger)
		}
	}
}
