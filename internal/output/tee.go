// ABOUTME: Tee sink fanning writes out to multiple sinks
// ABOUTME: Used to play through the speaker while recording to a file
package output

import "log"

// Tee forwards every write to all of its sinks. A failing sink does
// not stop the others; the first error is returned after all writes.
type Tee struct {
	sinks []Sink
}

// NewTee wraps the given sinks in a fan-out
func NewTee(sinks ...Sink) *Tee {
	return &Tee{sinks: sinks}
}

// Write sends the buffer to every sink
func (t *Tee) Write(samples []int16) (int, error) {
	var firstErr error
	for _, s := range t.sinks {
		if _, err := s.Write(samples); err != nil {
			if firstErr == nil {
				firstErr = err
			} else {
				log.Printf("Tee: additional sink error: %v", err)
			}
		}
	}
	return len(samples), firstErr
}

// Close closes every sink, returning the first error
func (t *Tee) Close() error {
	var firstErr error
	for _, s := range t.sinks {
		if err := s.Close(); err != nil {
			if firstErr == nil {
				firstErr = err
			} else {
				log.Printf("Tee: additional close error: %v", err)
			}
		}
	}
	return firstErr
}
