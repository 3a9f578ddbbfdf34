package swma

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlidingWindow(t *testing.T) {
	w := NewSlidingWindow(3)
	assert.True(t, math.IsNaN(w.Average()))

	assert.Equal(t, 3.0, w.Add(3))
	assert.Equal(t, 4.0, w.Add(5))
	assert.Equal(t, 4.0, w.Add(4))
	assert.Equal(t, 5.0, w.Add(6))
	assert.Equal(t, 5.0, w.Add(5))
	assert.Equal(t, 5.0, w.Average())
}

func TestSmooth(t *testing.T) {
	nan := math.NaN()
	got := Smooth([]float64{2, 4, nan, 6, 8}, 2)
	assert.Equal(t, 2.0, got[0])
	assert.Equal(t, 3.0, got[1])
	assert.True(t, math.IsNaN(got[2]))
	assert.Equal(t, 5.0, got[3])
	assert.Equal(t, 7.0, got[4])

	in := []float64{1, 2, 3}
	out := Smooth(in, 1)
	assert.Equal(t, in, out)
	out[0] = 10
	assert.Equal(t, 1.0, in[0])
}
