// Package synth generates synthetic data series for demos and tests:
// bounded random walks, categorical series, and grouped categorical
// series shaped like the tuples the plot grammar consumes.
package synth

import (
	"fmt"
	"math/rand"
	"time"
)

// Walk is a bounded random walk. Steps that would leave [Min, Max] are
// discarded, so the walk lingers at the bounds instead of escaping them.
type Walk struct {
	Min       float64
	Max       float64
	Variation float64

	value float64
	rng   *rand.Rand
}

// NewWalk creates a walk over [min, max] with the given step variation,
// starting at a random point inside the range. A nil rng gets a
// time-seeded source.
func NewWalk(min, max, variation float64, rng *rand.Rand) *Walk {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Walk{
		Min:       min,
		Max:       max,
		Variation: variation,
		value:     min + rng.Float64()*(max-min),
		rng:       rng,
	}
}

// Next advances the walk and returns the new value and the applied delta.
func (w *Walk) Next() (value, delta float64) {
	prev := w.value
	next := prev + (w.rng.Float64()-0.5)*w.Variation
	if next < w.Min || next > w.Max {
		next = prev
	}
	w.value = next
	return next, next - prev
}

// Point is one sample of a categorical series.
type Point struct {
	Category string
	Value    float64
	Delta    float64
}

// FakeCategoricalSeries emits consecutively numbered categories ("C1",
// "C2", ...) with walk-driven values.
type FakeCategoricalSeries struct {
	walk *Walk
	i    int
}

// NewFakeCategoricalSeries creates a series over [0, 100] with the
// default variation.
func NewFakeCategoricalSeries(rng *rand.Rand) *FakeCategoricalSeries {
	return &FakeCategoricalSeries{walk: NewWalk(0, 100, 10, rng)}
}

// Next returns the next category sample.
func (f *FakeCategoricalSeries) Next() Point {
	f.i++
	value, delta := f.walk.Next()
	return Point{
		Category: fmt.Sprintf("C%d", f.i),
		Value:    value,
		Delta:    delta,
	}
}

// GroupPoint is one sample of a grouped categorical series.
type GroupPoint struct {
	Group    string
	Category string
	Value    float64
	Delta    float64
}

// FakeMultiCategoricalSeries runs one categorical series per group
// ("G1".."Gk") in lockstep, for stacked and grouped charts.
type FakeMultiCategoricalSeries struct {
	groups []string
	series map[string]*FakeCategoricalSeries
}

// NewFakeMultiCategoricalSeries creates k grouped series sharing one
// random source.
func NewFakeMultiCategoricalSeries(k int, rng *rand.Rand) *FakeMultiCategoricalSeries {
	if k <= 0 {
		k = 1
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	m := &FakeMultiCategoricalSeries{
		series: make(map[string]*FakeCategoricalSeries, k),
	}
	for i := 0; i < k; i++ {
		g := fmt.Sprintf("G%d", i+1)
		m.groups = append(m.groups, g)
		m.series[g] = NewFakeCategoricalSeries(rng)
	}
	return m
}

// Groups returns the group names in order.
func (m *FakeMultiCategoricalSeries) Groups() []string {
	return append([]string(nil), m.groups...)
}

// Next advances every group by one step, in group order.
func (m *FakeMultiCategoricalSeries) Next() []GroupPoint {
	out := make([]GroupPoint, 0, len(m.groups))
	for _, g := range m.groups {
		p := m.series[g].Next()
		out = append(out, GroupPoint{
			Group:    g,
			Category: p.Category,
			Value:    p.Value,
			Delta:    p.Delta,
		})
	}
	return out
}
