package router

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Fan copies every value from one input channel to all subscribers. Once the
// input is closed and drained the subscriber channels are closed too.
type Fan[T any] struct {
	debug   bool
	name    string
	mu      sync.Mutex
	input   <-chan T
	outputs map[string]chan T
	closed  bool
	done    <-chan struct{}
}

func NewFan[T any](name string, input <-chan T) *Fan[T] {
	return &Fan[T]{
		name:    name,
		input:   input,
		outputs: make(map[string]chan T),
	}
}

func (f *Fan[T]) SetDebug(debug bool) {
	f.debug = debug
}

// SetContext stops Run when ctx is done, even while a subscriber is no
// longer reading.
func (f *Fan[T]) SetContext(ctx context.Context) {
	f.done = ctx.Done()
}

func (f *Fan[T]) Subscribe(client string) (<-chan T, error) {
	if f.debug {
		slog.Debug("subscribing to fan", "fan", f.name, "client", client)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, fmt.Errorf("fan %s: input closed", f.name)
	}
	if _, ok := f.outputs[client]; ok {
		return nil, fmt.Errorf("fan %s: client %s already subscribed", f.name, client)
	}
	c := make(chan T, 1)
	f.outputs[client] = c
	return c, nil
}

func (f *Fan[T]) Run() error {
	defer f.closeOutputs()
	for {
		var v T
		var ok bool
		select {
		case v, ok = <-f.input:
			if !ok {
				return nil
			}
		case <-f.done:
			return nil
		}
		if f.debug {
			slog.Debug("fan received value", "fan", f.name, "value", v)
		}
		if !f.send(v) {
			return nil
		}
	}
}

func (f *Fan[T]) send(v T) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, ch := range f.outputs {
		select {
		case ch <- v:
		case <-f.done:
			return false
		}
		if f.debug {
			slog.Debug("fan sent value", "subscriber", k, "fan", f.name, "value", v)
		}
	}
	return true
}

func (f *Fan[T]) closeOutputs() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	for k, ch := range f.outputs {
		close(ch)
		delete(f.outputs, k)
	}
}
