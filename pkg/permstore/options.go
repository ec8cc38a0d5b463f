package permstore

import (
	"time"

	"code.cloudfoundry.org/clock"
	"github.com/orgacl/aclview/pkg/metrics"
	"github.com/orgacl/aclview/pkg/metrics/stats"
	"github.com/orgacl/aclview/pkg/permindex"
)

const (
	DefaultRefreshInterval = 30 * time.Second
	DefaultMaxRebuildTime  = 10 * time.Second
)

var DefaultHistogramBuckets = []float64{50, 90, 99}

type Option func(*options)

func WithDeduplication() Option {
	return func(o *options) {
		o.indexOptions = append(o.indexOptions, permindex.WithDeduplication())
	}
}

func WithStatter(statter metrics.Statter) Option {
	return func(o *options) {
		o.statter = statter
	}
}

func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

func WithHistogram(histogram *stats.Histogram) Option {
	return func(o *options) {
		o.histogram = histogram
	}
}

type options struct {
	indexOptions []permindex.Option
	statter      metrics.Statter
	clock        clock.Clock
	histogram    *stats.Histogram
}

func defaultOptions() *options {
	return &options{
		statter: metrics.Discard,
		clock:   clock.NewClock(),
		histogram: stats.NewHistogram(stats.HistogramOptions{
			Name:        MetricRebuildLatency,
			Buckets:     DefaultHistogramBuckets,
			MaxDuration: DefaultMaxRebuildTime,
		}),
	}
}
