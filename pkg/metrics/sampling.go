package metrics

import (
	"math"
	"sync/atomic"
)

// SamplingObserver forwards roughly rate*N of N events. Sampling is
// deterministic (every k-th event) so JSONL output stays reproducible.
type SamplingObserver struct {
	sink    Observer
	rate    float64
	stride  uint64
	counter atomic.Uint64
}

func NewSamplingObserver(sink Observer, rate float64) *SamplingObserver {
	rate = math.Min(math.Max(rate, 0), 1)
	var stride uint64
	switch {
	case rate == 0:
		stride = 0
	case rate == 1:
		stride = 1
	default:
		stride = uint64(math.Round(1.0 / rate))
		if stride == 0 {
			stride = 1
		}
	}
	return &SamplingObserver{sink: sink, rate: rate, stride: stride}
}

func (s *SamplingObserver) RecordEvent(ev MetricsEvent) {
	if s.stride == 0 {
		return
	}
	if s.stride == 1 {
		s.sink.RecordEvent(ev)
		return
	}
	if s.counter.Add(1)%s.stride == 0 {
		s.sink.RecordEvent(ev)
	}
}
