package registry

import "math"

// DelayLine is the circular sample history backing one delwrite~/
// delread~/vd~ name. Within one graph, the DSP process order walks
// leaves and roots in creation order, so a delwrite~ created before its
// delread~/vd~ subscribers writes ahead of their reads in the same
// block; a reader walked before the delwrite~ sees the previous block's
// samples. A read whose target index predates
// anything ever written, or has aged out of the history capacity,
// returns silence.
type DelayLine struct {
	buf          []float32
	totalWritten int64
	sampleRate   float64
}

// NewDelayLine allocates a delay line able to hold at least maxDelayMs
// of history at sampleRate, with one block of slack.
func NewDelayLine(maxDelayMs float64, sampleRate float64, blockSize int) *DelayLine {
	cap := int(maxDelayMs*sampleRate/1000.0) + blockSize + 1
	if cap < blockSize+1 {
		cap = blockSize + 1
	}
	return &DelayLine{buf: make([]float32, cap), sampleRate: sampleRate}
}

// WriteBlock appends one block of samples to the history.
func (d *DelayLine) WriteBlock(samples []float32) {
	n := int64(len(d.buf))
	for i, s := range samples {
		d.buf[(d.totalWritten+int64(i))%n] = s
	}
	d.totalWritten += int64(len(samples))
}

// ReadBlock fills out with the history delayed by delayMs, as of the
// end of the most recent WriteBlock call.
func (d *DelayLine) ReadBlock(delayMs float64, out []float32) {
	delaySamples := int64(delayMs * d.sampleRate / 1000.0)
	blockSize := int64(len(out))
	base := d.totalWritten - blockSize
	n := int64(len(d.buf))
	for i := range out {
		idx := base + int64(i) - delaySamples
		if idx < 0 || d.totalWritten-idx > n {
			out[i] = 0
			continue
		}
		out[i] = d.buf[((idx%n)+n)%n]
	}
}

// ReadVariable fills out with the history read at a per-sample delay
// (in ms) given by delayMsPerSample, linearly interpolating between
// neighboring samples (vd~). Used for variable-delay reads where the
// delay time itself is a signal.
func (d *DelayLine) ReadVariable(delayMsPerSample []float32, out []float32) {
	blockSize := int64(len(out))
	base := d.totalWritten - blockSize
	n := int64(len(d.buf))
	for i := range out {
		delaySamples := float64(delayMsPerSample[i]) * d.sampleRate / 1000.0
		fIdx := float64(base+int64(i)) - delaySamples
		lo := int64(math.Floor(fIdx))
		frac := float32(fIdx - math.Floor(fIdx))
		out[i] = d.sampleAt(lo, n)*(1-frac) + d.sampleAt(lo+1, n)*frac
	}
}

func (d *DelayLine) sampleAt(idx int64, n int64) float32 {
	if idx < 0 || d.totalWritten-idx > n || idx >= d.totalWritten {
		return 0
	}
	return d.buf[((idx%n)+n)%n]
}

// DelReadSink is implemented by delread~/vd~ instances: Bind is called
// when a delwrite~ of the matching name registers or re-registers.
type DelReadSink interface {
	Bind(dl *DelayLine)
}

type delayTable struct {
	lines     map[string]*DelayLine
	delreads  map[string][]DelReadSink
}

func newDelayTable() *delayTable {
	return &delayTable{
		lines:    make(map[string]*DelayLine),
		delreads: make(map[string][]DelReadSink),
	}
}

// RegisterDelWrite installs dl as name's delay line. Duplicate names
// are rejected: the later delwrite~ still exists in its graph, but it
// never becomes the delay line any delread~/vd~ of that name reads.
func (r *Registry) RegisterDelWrite(name string, dl *DelayLine) bool {
	t := r.delays
	if _, dup := t.lines[name]; dup {
		r.diag.Errorf("delwrite~: duplicate name %q ignored", name)
		return false
	}
	t.lines[name] = dl
	for _, sink := range t.delreads[name] {
		sink.Bind(dl)
	}
	return true
}

// RegisterDelRead appends sink to name's subscriber list and binds it
// immediately if a delwrite~ of that name already exists.
func (r *Registry) RegisterDelRead(name string, sink DelReadSink) {
	t := r.delays
	t.delreads[name] = append(t.delreads[name], sink)
	if dl, ok := t.lines[name]; ok {
		sink.Bind(dl)
	}
}

// DelayLineFor returns the registered delay line for name, or nil.
func (r *Registry) DelayLineFor(name string) *DelayLine {
	return r.delays.lines[name]
}
