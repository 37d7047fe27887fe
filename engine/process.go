package engine

// Process renders one block: copies host input into the ADC buffers,
// zeros the DAC buffers, drains due messages, runs every attached
// graph's DSP pass, advances the block clock, and copies the DAC
// buffers to host output. input and output are channel-major,
// blockSize floats per channel, contiguous.
func (c *Context) Process(input [][]float32, output [][]float32) {
	c.lock()
	defer c.unlock()

	for ch := range c.adc {
		if ch < len(input) {
			copy(c.adc[ch], input[ch])
		}
	}
	for ch := range c.dac {
		for i := range c.dac[ch] {
			c.dac[ch][i] = 0
		}
	}

	c.scheduler.Advance(c.graphs)

	for ch := range c.dac {
		if ch < len(output) {
			copy(output[ch], c.dac[ch])
		}
	}
}
