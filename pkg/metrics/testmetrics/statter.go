package testmetrics

import (
	"sync"
	"time"
)

type Statter struct {
	lock                *sync.RWMutex
	incCalls            []IncCall
	gaugeCalls          []GaugeCall
	timingDurationCalls []TimingDurationCall
}

func NewStatter() *Statter {
	return &Statter{
		lock: &sync.RWMutex{},
	}
}

func (s *Statter) IncCalls() []IncCall {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return append([]IncCall{}, s.incCalls...)
}

func (s *Statter) GaugeCalls() []GaugeCall {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return append([]GaugeCall{}, s.gaugeCalls...)
}

func (s *Statter) TimingDurationCalls() []TimingDurationCall {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return append([]TimingDurationCall{}, s.timingDurationCalls...)
}

// LastGauge returns the last value sent for metric.
func (s *Statter) LastGauge(metric string) (int64, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	for i := len(s.gaugeCalls) - 1; i >= 0; i-- {
		if s.gaugeCalls[i].Metric == metric {
			return s.gaugeCalls[i].Value, true
		}
	}

	return 0, false
}

func (s *Statter) Inc(metric string, value int64) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.incCalls = append(s.incCalls, IncCall{
		Metric: metric,
		Value:  value,
	})
}

func (s *Statter) Gauge(metric string, value int64) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.gaugeCalls = append(s.gaugeCalls, GaugeCall{
		Metric: metric,
		Value:  value,
	})
}

func (s *Statter) TimingDuration(metric string, value time.Duration) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.timingDurationCalls = append(s.timingDurationCalls, TimingDurationCall{
		Metric: metric,
		Value:  value,
	})
}

type IncCall struct {
	Metric string
	Value  int64
}

type GaugeCall struct {
	Metric string
	Value  int64
}

type TimingDurationCall struct {
	Metric string
	Value  time.Duration
}
