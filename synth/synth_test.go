package synth

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalk_StaysWithinBounds(t *testing.T) {
	w := NewWalk(0, 100, 10, rand.New(rand.NewSource(1)))
	for i := 0; i < 1000; i++ {
		v, _ := w.Next()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
	}
}

func TestWalk_DeltaMatchesValueChange(t *testing.T) {
	w := NewWalk(0, 100, 10, rand.New(rand.NewSource(2)))
	prev, _ := w.Next()
	for i := 0; i < 100; i++ {
		v, d := w.Next()
		assert.InDelta(t, v-prev, d, 1e-9)
		prev = v
	}
}

func TestFakeCategoricalSeries_Categories(t *testing.T) {
	f := NewFakeCategoricalSeries(rand.New(rand.NewSource(3)))

	p := f.Next()
	assert.Equal(t, "C1", p.Category)
	p = f.Next()
	assert.Equal(t, "C2", p.Category)
	p = f.Next()
	assert.Equal(t, "C3", p.Category)
}

func TestFakeMultiCategoricalSeries(t *testing.T) {
	f := NewFakeMultiCategoricalSeries(3, rand.New(rand.NewSource(4)))
	assert.Equal(t, []string{"G1", "G2", "G3"}, f.Groups())

	step := f.Next()
	require.Len(t, step, 3)
	for i, p := range step {
		assert.Equal(t, f.Groups()[i], p.Group)
		assert.Equal(t, "C1", p.Category)
	}

	step = f.Next()
	for _, p := range step {
		assert.Equal(t, "C2", p.Category)
	}
}

func TestFakeMultiCategoricalSeries_MinimumOneGroup(t *testing.T) {
	f := NewFakeMultiCategoricalSeries(0, nil)
	assert.Equal(t, []string{"G1"}, f.Groups())
}
