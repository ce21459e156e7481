// ABOUTME: Null sink that discards samples while counting them
// ABOUTME: Default sink for the offline renderer when no file is requested
package output

// Null discards every buffer and tracks how much audio passed through
type Null struct {
	frames int
	closed bool
}

// NewNull creates a discarding sink
func NewNull() *Null {
	return &Null{}
}

// Write discards the buffer
func (n *Null) Write(samples []int16) (int, error) {
	n.frames += len(samples)
	return len(samples), nil
}

// Frames returns the total number of samples discarded
func (n *Null) Frames() int {
	return n.frames
}

// Close marks the sink closed
func (n *Null) Close() error {
	n.closed = true
	return nil
}
