package metrics

import (
	"maps"
	"math"
	"slices"
	"sync/atomic"
)

// DefaultBuckets are request-duration buckets in seconds. The upper range
// covers the slicer's artificial delay.
var DefaultBuckets = []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10}

// Histogram tracks the distribution of observed values.
type Histogram struct {
	*family[histogramChild]
	buckets []float64
}

type histogramChild struct {
	labels map[string]string
	bounds []float64
	counts []uint64
	sum    atomicFloat64
	count  uint64
}

func newHistogram(name, help string, buckets []float64, labelNames []string) *Histogram {
	bounds := slices.Clone(buckets)
	slices.Sort(bounds)
	if len(bounds) == 0 || !math.IsInf(bounds[len(bounds)-1], 1) {
		bounds = append(bounds, math.Inf(1))
	}
	h := &Histogram{buckets: bounds}
	h.family = newFamily(name, help, labelNames, func(l map[string]string) *histogramChild {
		return &histogramChild{labels: l, bounds: bounds, counts: make([]uint64, len(bounds))}
	})
	return h
}

// Type returns MetricTypeHistogram.
func (h *Histogram) Type() MetricType { return MetricTypeHistogram }

// WithLabels returns the histogram for the given label values.
func (h *Histogram) WithLabels(values ...string) (*HistogramVec, error) {
	child, err := h.child("histogram", values)
	if err != nil {
		return nil, err
	}
	return &HistogramVec{h: child}, nil
}

// Collect returns cumulative bucket, _sum and _count samples.
func (h *Histogram) Collect() []Sample {
	var samples []Sample
	h.each(func(ch *histogramChild) {
		var cumulative uint64
		for i, bound := range ch.bounds {
			cumulative += atomic.LoadUint64(&ch.counts[i])
			labels := maps.Clone(ch.labels)
			labels["le"] = formatFloat(bound)
			samples = append(samples, Sample{Name: h.name + "_bucket", Labels: labels, Value: float64(cumulative)})
		}
		samples = append(samples,
			Sample{Name: h.name + "_sum", Labels: ch.labels, Value: ch.sum.Load()},
			Sample{Name: h.name + "_count", Labels: ch.labels, Value: float64(atomic.LoadUint64(&ch.count))},
		)
	})
	return samples
}

// HistogramVec is a histogram bound to one label combination.
type HistogramVec struct {
	h *histogramChild
}

// Observe records a value.
func (v *HistogramVec) Observe(value float64) {
	for i, bound := range v.h.bounds {
		if value <= bound {
			atomic.AddUint64(&v.h.counts[i], 1)
			break
		}
	}
	v.h.sum.Add(value)
	atomic.AddUint64(&v.h.count, 1)
}
