// Package datalog reads and writes the psychrometer sensor log: a comma
// separated file with a header row, a timestamp column and one column per
// temperature or humidity channel.
package datalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
)

const (
	ColumnTimestamp    = "Timestamp"
	ColumnTbs          = "Tbs_C"          // dry bulb, thermistor
	ColumnTbh          = "Tbh_C"          // wet bulb, thermistor
	ColumnTbsProtect   = "TbsProtect_C"   // dry bulb, radiation shielded
	ColumnTbsUnprotect = "TbsUnprotect_C" // dry bulb, in the sun
	ColumnTbs2         = "Tbs2_C"         // dry bulb, DHT11
	ColumnPhi          = "phi_%"          // relative humidity, computed from the psychrometer
	ColumnPhi2         = "phi2_%"         // relative humidity, DHT11
)

var ErrMissingColumn = errors.New("column not in log")

type Record struct {
	Timestamp    Time  `csv:"Timestamp"`
	Tbs          Value `csv:"Tbs_C"`
	Tbh          Value `csv:"Tbh_C"`
	TbsProtect   Value `csv:"TbsProtect_C"`
	TbsUnprotect Value `csv:"TbsUnprotect_C"`
	Tbs2         Value `csv:"Tbs2_C"`
	Phi          Value `csv:"phi_%"`
	Phi2         Value `csv:"phi2_%"`
}

func (r *Record) Value(column string) (Value, error) {
	switch column {
	case ColumnTbs:
		return r.Tbs, nil
	case ColumnTbh:
		return r.Tbh, nil
	case ColumnTbsProtect:
		return r.TbsProtect, nil
	case ColumnTbsUnprotect:
		return r.TbsUnprotect, nil
	case ColumnTbs2:
		return r.Tbs2, nil
	case ColumnPhi:
		return r.Phi, nil
	case ColumnPhi2:
		return r.Phi2, nil
	}
	return Value{}, fmt.Errorf("%w: %s", ErrMissingColumn, column)
}

type Log struct {
	Records []*Record
	columns map[string]bool
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	return cr
}

// rows feeds already split records to gocsv.
type rows [][]string

func (r rows) GetCSVRows() ([][]string, error) {
	return r, nil
}

func Read(r io.Reader) (*Log, error) {
	data, err := newReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("datalog: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("datalog: reading header: %w", io.EOF)
	}

	header := data[0]
	l := &Log{columns: make(map[string]bool, len(header))}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
		l.columns[header[i]] = true
	}

	if err := gocsv.UnmarshalDecoder(rows(data), &l.Records); err != nil {
		return nil, fmt.Errorf("datalog: %w", err)
	}
	slog.Debug("read log", "records", len(l.Records), "columns", header, "module", "datalog")
	return l, nil
}

func ReadFile(path string) (*Log, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("datalog: %w", err)
	}
	defer f.Close()
	return Read(f)
}

func (l *Log) Len() int {
	return len(l.Records)
}

// Has reports whether the log header contains column.
func (l *Log) Has(column string) bool {
	return l.columns[column]
}

// Series returns one value per record for column, with NaN for missing cells.
func (l *Log) Series(column string) ([]float64, error) {
	if !l.Has(column) {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, column)
	}
	s := make([]float64, len(l.Records))
	for i, r := range l.Records {
		v, err := r.Value(column)
		if err != nil {
			return nil, err
		}
		s[i] = v.Float()
	}
	return s, nil
}

func (l *Log) Times() []time.Time {
	t := make([]time.Time, len(l.Records))
	for i, r := range l.Records {
		t[i] = r.Timestamp.Time
	}
	return t
}

// Count returns the number of valid cells in column.
func (l *Log) Count(column string) int {
	s, err := l.Series(column)
	if err != nil {
		return 0
	}
	n := 0
	for _, v := range s {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}
