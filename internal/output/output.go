// ABOUTME: Output sink interface for generated PCM buffers
// ABOUTME: Speaker, WAV recorder, tee, and null implementations live here
package output

// Sink receives PCM sample buffers from the engine. Write returns the
// number of samples consumed. Close releases the sink's resources;
// writes after Close fail.
type Sink interface {
	Write(samples []int16) (int, error)
	Close() error
}
