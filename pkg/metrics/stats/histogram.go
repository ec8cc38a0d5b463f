package stats

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/codahale/hdrhistogram"
	"github.com/orgacl/aclview/pkg/metrics"
)

type HistogramOptions struct {
	Name        string
	Buckets     []float64
	MaxDuration time.Duration
}

// Histogram keeps recent durations in two rotating windows so quantiles
// follow the latest observations.
type Histogram struct {
	name    string
	buckets []float64

	// once the current window holds this many values it is rotated, so
	// between countBeforeRotation and 2*countBeforeRotation values are
	// considered
	countBeforeRotation int64

	lock      *sync.Mutex
	histogram *hdrhistogram.WindowedHistogram
}

func NewHistogram(opts HistogramOptions) *Histogram {
	// you need >= 2 data points for p50, >= 4 for p25 or p75, >= 100 for
	// p99, >= 1000 for p99.9
	var countBeforeRotation int64 = 1
	for _, b := range opts.Buckets {
		m := int64(100)
		for b != math.Trunc(b) {
			m *= 10
			b *= 10
		}

		count := m / gcd(int64(math.Trunc(b)), m)
		if count > countBeforeRotation {
			countBeforeRotation = count
		}
	}

	return &Histogram{
		name:                opts.Name,
		buckets:             opts.Buckets,
		countBeforeRotation: countBeforeRotation,
		lock:                &sync.Mutex{},
		histogram:           hdrhistogram.NewWindowed(2, 0, durationToMilliseconds(opts.MaxDuration), 1),
	}
}

func (h *Histogram) Observe(duration time.Duration) error {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.histogram.Current.TotalCount() >= h.countBeforeRotation {
		h.histogram.Rotate()
	}

	return h.histogram.Current.RecordValue(durationToMilliseconds(duration))
}

func (h *Histogram) Collect() map[string]int64 {
	h.lock.Lock()
	histogram := h.histogram.Merge()
	h.lock.Unlock()

	values := make(map[string]int64)
	values[fmt.Sprintf("%s.max", h.name)] = histogram.Max()

	for _, b := range h.buckets {
		quantileLabel := strings.Replace(strconv.FormatFloat(b, 'f', -1, 64), ".", "", -1)
		values[fmt.Sprintf("%s.p%s", h.name, quantileLabel)] = histogram.ValueAtQuantile(b)
	}

	return values
}

// Report sends every collected value as a gauge, in metric name order.
func (h *Histogram) Report(statter metrics.Statter) {
	values := h.Collect()

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		statter.Gauge(name, values[name])
	}
}

// CountBeforeRotation is for testing
func (h *Histogram) CountBeforeRotation() int64 {
	return h.countBeforeRotation
}

func durationToMilliseconds(d time.Duration) int64 {
	return int64(d / time.Millisecond)
}

func gcd(x, y int64) int64 {
	for y != 0 {
		x, y = y, x%y
	}

	return x
}
