package stats_test

import (
	"time"

	. "github.com/orgacl/aclview/pkg/metrics/stats"
	"github.com/orgacl/aclview/pkg/metrics/testmetrics"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Histogram", func() {
	var (
		opts HistogramOptions
	)

	BeforeEach(func() {
		opts = HistogramOptions{
			Name:        "aclview.rebuild.timing",
			MaxDuration: time.Second,
		}
	})

	Describe("#NewHistogram", func() {
		It("sizes the window from the most granular bucket", func() {
			opts.Buckets = []float64{50}
			Expect(NewHistogram(opts).CountBeforeRotation()).To(Equal(int64(2)))

			opts.Buckets = []float64{90, 99}
			Expect(NewHistogram(opts).CountBeforeRotation()).To(Equal(int64(100)))

			opts.Buckets = []float64{95, 25}
			Expect(NewHistogram(opts).CountBeforeRotation()).To(Equal(int64(20)))
		})

		It("rotates after every value without buckets", func() {
			Expect(NewHistogram(opts).CountBeforeRotation()).To(Equal(int64(1)))
		})
	})

	Describe("#Observe", func() {
		It("records durations in milliseconds", func() {
			subject := NewHistogram(opts)

			Expect(subject.Observe(3 * time.Millisecond)).To(Succeed())
			Expect(subject.Collect()).To(HaveKeyWithValue("aclview.rebuild.timing.max", int64(3)))
		})

		It("fails for durations above the maximum", func() {
			subject := NewHistogram(opts)

			Expect(subject.Observe(time.Hour)).NotTo(Succeed())
		})
	})

	Describe("#Collect", func() {
		It("returns the max and one value per bucket", func() {
			opts.Buckets = []float64{50, 95}
			subject := NewHistogram(opts)

			Expect(subject.Collect()).To(Equal(map[string]int64{
				"aclview.rebuild.timing.max": 0,
				"aclview.rebuild.timing.p50": 0,
				"aclview.rebuild.timing.p95": 0,
			}))
		})
	})

	Describe("#Report", func() {
		It("sends every value as a gauge in name order", func() {
			opts.Buckets = []float64{90}
			subject := NewHistogram(opts)
			Expect(subject.Observe(7 * time.Millisecond)).To(Succeed())

			statter := testmetrics.NewStatter()
			subject.Report(statter)

			Expect(statter.GaugeCalls()).To(Equal([]testmetrics.GaugeCall{
				{Metric: "aclview.rebuild.timing.max", Value: 7},
				{Metric: "aclview.rebuild.timing.p90", Value: 7},
			}))
		})
	})
})
