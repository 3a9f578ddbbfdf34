package swma

import "math"

type SlidingWindow struct {
	sum        float64
	count      int
	window     []float64
	windowSize int
}

func NewSlidingWindow(windowSize int) *SlidingWindow {
	return &SlidingWindow{
		window:     make([]float64, 0, windowSize),
		windowSize: windowSize,
	}
}

// Add pushes value into the window and returns the average of the values
// currently held. Until the window fills up the average covers fewer values.
func (s *SlidingWindow) Add(value float64) float64 {
	s.sum += value
	if s.count == s.windowSize {
		s.sum -= s.window[0]
		s.window = append(s.window[1:], value)
	} else {
		s.window = append(s.window, value)
		s.count++
	}
	return s.Average()
}

func (s *SlidingWindow) Average() float64 {
	if s.count == 0 {
		return math.NaN()
	}
	return s.sum / float64(s.count)
}

// Smooth returns the trailing moving average of series. Missing (NaN)
// samples stay missing and are not added to the window. A window of 1 or less
// returns a copy of series.
func Smooth(series []float64, windowSize int) []float64 {
	out := make([]float64, len(series))
	if windowSize <= 1 {
		copy(out, series)
		return out
	}
	w := NewSlidingWindow(windowSize)
	for i, v := range series {
		if math.IsNaN(v) {
			out[i] = v
			continue
		}
		out[i] = w.Add(v)
	}
	return out
}
