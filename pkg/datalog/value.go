package datalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Value is a numeric log cell. Empty or non-numeric cells are kept as missing
// instead of failing the whole log.
type Value struct {
	v  float64
	ok bool
}

func NewValue(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	return Value{v: v, ok: true}
}

// Float returns the cell value, or NaN when it is missing.
func (v Value) Float() float64 {
	if !v.ok {
		return math.NaN()
	}
	return v.v
}

func (v Value) Valid() bool {
	return v.ok
}

func (v *Value) UnmarshalCSV(s string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		*v = Value{}
		return nil
	}
	*v = NewValue(f)
	return nil
}

func (v Value) MarshalCSV() (string, error) {
	if !v.ok {
		return "", nil
	}
	return strconv.FormatFloat(v.v, 'f', -1, 64), nil
}

const TimeLayout = "2006-01-02 15:04:05"

var timeLayouts = []string{
	TimeLayout,
	time.RFC3339,
	"2006/01/02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

type Time struct {
	time.Time
}

func (t *Time) UnmarshalCSV(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timeLayouts {
		ts, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			t.Time = ts
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

func (t Time) MarshalCSV() (string, error) {
	if t.IsZero() {
		return "", nil
	}
	return t.Format(TimeLayout), nil
}
