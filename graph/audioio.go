package graph

// AudioIO is the engine-level global ADC/DAC buffer fabric: adc~
// objects read a host input channel, dac~ objects accumulate into a
// host output channel (several dac~ instances may write the same
// channel within a block, and the engine owns the buffers rather than
// any one object). Typed as an interface here (rather than a concrete
// engine type) to avoid package graph depending on package engine.
type AudioIO interface {
	// ADCChannel returns the current block's input samples for host
	// input channel ch (0-based), or nil if ch is out of range.
	ADCChannel(ch int) []float32
	// AccumulateDAC adds samples into host output channel ch (0-based).
	AccumulateDAC(ch int, samples []float32)
}

// SetAudioIO installs the engine's ADC/DAC fabric for this graph.
func (g *Graph) SetAudioIO(a AudioIO) { g.audioIO = a }

// AudioIO returns the graph's ADC/DAC fabric, or nil if none is set.
func (g *Graph) AudioIO() AudioIO { return g.audioIO }
