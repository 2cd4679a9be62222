package metrics

import "sync"

// Gauge is a metric that can go up and down.
type Gauge struct {
	*family[gaugeChild]
}

type gaugeChild struct {
	labels map[string]string
	value  atomicFloat64
}

func newGauge(name, help string, labelNames []string) *Gauge {
	return &Gauge{newFamily(name, help, labelNames, func(l map[string]string) *gaugeChild {
		return &gaugeChild{labels: l}
	})}
}

// Type returns MetricTypeGauge.
func (g *Gauge) Type() MetricType { return MetricTypeGauge }

// WithLabels returns the gauge for the given label values.
func (g *Gauge) WithLabels(values ...string) (*GaugeVec, error) {
	child, err := g.child("gauge", values)
	if err != nil {
		return nil, err
	}
	return &GaugeVec{g: child}, nil
}

// Set sets an unlabelled gauge.
func (g *Gauge) Set(value float64) error {
	vec, err := g.WithLabels()
	if err != nil {
		return err
	}
	vec.Set(value)
	return nil
}

// Collect returns all samples.
func (g *Gauge) Collect() []Sample {
	var samples []Sample
	g.each(func(ch *gaugeChild) {
		samples = append(samples, Sample{Name: g.name, Labels: ch.labels, Value: ch.value.Load()})
	})
	return samples
}

// GaugeVec is a gauge bound to one label combination.
type GaugeVec struct {
	g *gaugeChild
}

// Set sets the gauge.
func (v *GaugeVec) Set(value float64) { v.g.value.Store(value) }

// Add adds delta to the gauge.
func (v *GaugeVec) Add(delta float64) { v.g.value.Add(delta) }

// GaugeFunc is a gauge whose samples are produced at scrape time.
type GaugeFunc struct {
	name    string
	help    string
	mu      sync.Mutex
	collect func() []Sample
}

// Name returns the metric name.
func (g *GaugeFunc) Name() string { return g.name }

// Help returns the help text.
func (g *GaugeFunc) Help() string { return g.help }

// Type returns MetricTypeGauge.
func (g *GaugeFunc) Type() MetricType { return MetricTypeGauge }

// Collect calls the sampling function and stamps the metric name on each
// sample.
func (g *GaugeFunc) Collect() []Sample {
	g.mu.Lock()
	defer g.mu.Unlock()
	samples := g.collect()
	for i := range samples {
		samples[i].Name = g.name
	}
	return samples
}
