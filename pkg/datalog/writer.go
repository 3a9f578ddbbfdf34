package datalog

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/gocarina/gocsv"
)

// Writer appends records to a log, writing the header only once.
type Writer struct {
	mu          sync.Mutex
	w           io.Writer
	wroteHeader bool
}

func NewWriter(w io.Writer, header bool) *Writer {
	return &Writer{w: w, wroteHeader: !header}
}

// OpenFile opens path for appending, writing a header when the file is new or
// empty.
func OpenFile(path string) (*Writer, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("datalog: %w", err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("datalog: %w", err)
	}
	return NewWriter(f, st.Size() == 0), f, nil
}

func (w *Writer) Write(records ...*Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	var err error
	if w.wroteHeader {
		err = gocsv.MarshalWithoutHeaders(records, w.w)
	} else {
		err = gocsv.Marshal(records, w.w)
	}
	if err != nil {
		return fmt.Errorf("datalog: %w", err)
	}
	w.wroteHeader = true
	return nil
}
