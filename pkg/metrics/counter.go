package metrics

// Counter is a monotonically increasing metric.
type Counter struct {
	*family[counterChild]
}

type counterChild struct {
	labels map[string]string
	value  atomicFloat64
}

func newCounter(name, help string, labelNames []string) *Counter {
	return &Counter{newFamily(name, help, labelNames, func(l map[string]string) *counterChild {
		return &counterChild{labels: l}
	})}
}

// Type returns MetricTypeCounter.
func (c *Counter) Type() MetricType { return MetricTypeCounter }

// WithLabels returns the counter for the given label values.
func (c *Counter) WithLabels(values ...string) (*CounterVec, error) {
	child, err := c.child("counter", values)
	if err != nil {
		return nil, err
	}
	return &CounterVec{c: child}, nil
}

// Inc increments an unlabelled counter by 1.
func (c *Counter) Inc() error {
	return c.Add(1)
}

// Add adds delta to an unlabelled counter.
func (c *Counter) Add(delta float64) error {
	vec, err := c.WithLabels()
	if err != nil {
		return err
	}
	return vec.Add(delta)
}

// Collect returns all samples.
func (c *Counter) Collect() []Sample {
	var samples []Sample
	c.each(func(ch *counterChild) {
		samples = append(samples, Sample{Name: c.name, Labels: ch.labels, Value: ch.value.Load()})
	})
	return samples
}

// CounterVec is a counter bound to one label combination.
type CounterVec struct {
	c *counterChild
}

// Inc increments the counter by 1.
func (v *CounterVec) Inc() error {
	return v.Add(1)
}

// Add adds delta, which must not be negative.
func (v *CounterVec) Add(delta float64) error {
	if delta < 0 {
		return ErrNegativeCounterValue
	}
	v.c.value.Add(delta)
	return nil
}
