package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/orgacl/aclview/cmd/flags"
	"github.com/orgacl/aclview/pkg/metrics/stats"
	"github.com/orgacl/aclview/pkg/permstore"
)

// WatchCommand keeps an index of the snapshot source up to date and reports
// its size and rebuild latency to StatsD until interrupted.
type WatchCommand struct {
	Logger flags.LagerFlag

	Snapshot flags.SnapshotFlag `group:"Snapshot" namespace:"snapshot"`
	DB       flags.DBFlag       `group:"DB" namespace:"db"`
	StatsD   flags.StatsDFlag   `group:"StatsD" namespace:"statsd"`

	Interval       time.Duration `long:"interval" description:"Time between two loads of the snapshot source" default:"30s"`
	MaxRebuildTime time.Duration `long:"max-rebuild-time" description:"Largest rebuild time tracked by the latency histogram" default:"10s"`
	Deduplicate    bool          `long:"deduplicate" description:"Count an entity listed twice in the same role once"`
}

func (cmd WatchCommand) Execute([]string) error {
	logger, closer, err := cmd.Logger.Logger(component)
	if err != nil {
		return err
	}
	defer closer.Close()

	logger = logger.WithName("watch")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	statter, statsdCloser, err := cmd.StatsD.Statter(logger)
	if err != nil {
		return err
	}
	defer statsdCloser.Close()

	source, sourceCloser, err := cmd.Snapshot.Source(ctx, logger, &cmd.DB)
	if err != nil {
		return err
	}
	defer sourceCloser.Close()

	storeOpts := []permstore.Option{
		permstore.WithStatter(statter),
		permstore.WithHistogram(stats.NewHistogram(stats.HistogramOptions{
			Name:        permstore.MetricRebuildLatency,
			Buckets:     permstore.DefaultHistogramBuckets,
			MaxDuration: cmd.MaxRebuildTime,
		})),
	}
	if cmd.Deduplicate {
		storeOpts = append(storeOpts, permstore.WithDeduplication())
	}

	store := permstore.NewStore(storeOpts...)
	permstore.NewRefresher(store, source, cmd.Interval).Run(ctx, logger)

	return nil
}
