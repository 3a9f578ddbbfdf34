package mqtt

// Sample lets one value through out of every rate values.
type Sample struct {
	count int
	rate  int
}

func NewSample(rate int) *Sample {
	if rate < 1 {
		rate = 1
	}
	return &Sample{rate: rate}
}

func (s *Sample) Ready() bool {
	s.count++
	if s.count%s.rate == 0 {
		s.count = 0
		return true
	}
	return false
}

// Skipped reports whether values were held back since the last ready one.
func (s *Sample) Skipped() bool {
	return s.count != 0
}
