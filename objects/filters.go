package objects

import (
	"math"

	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/graph"
)

// hipSignal (hip~) is a one-pole high-pass filter set by cutoff
// frequency in Hz (creation arg or right-inlet float), grounded on
// a standard one-pole coefficient formula.
type hipSignal struct {
	*graph.Base
	cutoff   float32
	coeff    float32
	lastIn   float32
	lastOut  float32
}

func newHipSignal(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &hipSignal{cutoff: firstFloat(init, 0)}
	o.Base = graph.NewBase(o, "hip~", g, 2, 0, 1, 1)
	o.recompute()
	return o, nil
}

func (o *hipSignal) recompute() {
	sr := o.Graph().SampleRate()
	rc := 1.0 / (2 * math.Pi * float64(o.cutoff))
	dt := 1.0 / sr
	o.coeff = float32(rc / (rc + dt))
}

func (o *hipSignal) ProcessMessage(inlet int, msg atom.Message) {
	if inlet == 1 && msg.IsFloatAt(0) {
		o.cutoff = msg.FloatAt(0)
		o.recompute()
	}
}

func (o *hipSignal) ProcessDSP() {
	out := o.SignalOutletBuffer(0).Samples
	in := o.SignalInletBuffer(0).Samples
	for i, x := range in {
		y := o.coeff * (o.lastOut + x - o.lastIn)
		o.lastIn = x
		o.lastOut = y
		out[i] = y
	}
}

// lopSignal (lop~) is a one-pole low-pass filter, the complement of
// hip~, using the same one-pole coefficient formula.
type lopSignal struct {
	*graph.Base
	cutoff  float32
	coeff   float32
	lastOut float32
}

func newLopSignal(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &lopSignal{cutoff: firstFloat(init, 0)}
	o.Base = graph.NewBase(o, "lop~", g, 2, 0, 1, 1)
	o.recompute()
	return o, nil
}

func (o *lopSignal) recompute() {
	sr := o.Graph().SampleRate()
	dt := 1.0 / sr
	rc := 1.0 / (2 * math.Pi * float64(o.cutoff))
	o.coeff = float32(dt / (rc + dt))
}

func (o *lopSignal) ProcessMessage(inlet int, msg atom.Message) {
	if inlet == 1 && msg.IsFloatAt(0) {
		o.cutoff = msg.FloatAt(0)
		o.recompute()
	}
}

func (o *lopSignal) ProcessDSP() {
	out := o.SignalOutletBuffer(0).Samples
	in := o.SignalInletBuffer(0).Samples
	for i, x := range in {
		o.lastOut += o.coeff * (x - o.lastOut)
		out[i] = o.lastOut
	}
}

// bpSignal (bp~) is a resonant two-pole bandpass filter parameterized
// by center frequency (Hz) and Q, using Pd's standard bp~ coefficient
// recurrence.
type bpSignal struct {
	*graph.Base
	freq    float32
	q       float32
	coef1   float32
	coef2   float32
	gain    float32
	x1, x2  float32
}

func newBpSignal(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &bpSignal{freq: firstFloat(init, 0)}
	if init.Len() > 1 && init.IsFloatAt(1) {
		o.q = init.FloatAt(1)
	} else {
		o.q = 1
	}
	o.Base = graph.NewBase(o, "bp~", g, 3, 0, 1, 1)
	o.recompute()
	return o, nil
}

func (o *bpSignal) recompute() {
	sr := o.Graph().SampleRate()
	q := o.q
	if q < 0.001 {
		q = 0.001
	}
	r := float64(0)
	if o.freq > 0 {
		r = math.Exp(-float64(o.freq) * math.Pi / (float64(q) * sr))
	}
	theta := 2 * math.Pi * float64(o.freq) / sr
	o.coef1 = float32(2 * r * math.Cos(theta))
	o.coef2 = float32(-r * r)
	o.gain = float32(2 * (1 - float64(r)) * math.Sqrt(1-2*float64(r)*math.Cos(2*theta)+float64(r)*float64(r)))
}

func (o *bpSignal) ProcessMessage(inlet int, msg atom.Message) {
	if !msg.IsFloatAt(0) {
		return
	}
	switch inlet {
	case 1:
		o.freq = msg.FloatAt(0)
		o.recompute()
	case 2:
		o.q = msg.FloatAt(0)
		o.recompute()
	}
}

func (o *bpSignal) ProcessDSP() {
	out := o.SignalOutletBuffer(0).Samples
	in := o.SignalInletBuffer(0).Samples
	for i, x := range in {
		y := x + o.coef1*o.x1 + o.coef2*o.x2
		out[i] = o.gain * y
		o.x2 = o.x1
		o.x1 = y
	}
}

// vcfSignal (vcf~) is a voltage-controlled resonant bandpass filter:
// like bp~, but center frequency is a signal inlet (inlet 1) rather
// than a message-rate parameter, recomputing its coefficients every
// sample (coefficients depend on the instantaneous center frequency).
type vcfSignal struct {
	*graph.Base
	q      float32
	x1, x2 float32
}

func newVcfSignal(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &vcfSignal{q: firstFloat(init, 1)}
	o.Base = graph.NewBase(o, "vcf~", g, 1, 0, 2, 3)
	return o, nil
}

func (o *vcfSignal) ProcessMessage(inlet int, msg atom.Message) {
	if inlet == 0 && msg.IsFloatAt(0) {
		o.q = msg.FloatAt(0)
	}
}

func (o *vcfSignal) ProcessDSP() {
	bpOut := o.SignalOutletBuffer(0).Samples
	lpOut := o.SignalOutletBuffer(1).Samples
	hpOut := o.SignalOutletBuffer(2).Samples
	in := o.SignalInletBuffer(0).Samples
	centerHz := o.SignalInletBuffer(1).Samples
	sr := o.Graph().SampleRate()
	q := o.q
	if q < 0.001 {
		q = 0.001
	}
	for i, x := range in {
		freq := float64(centerHz[i])
		r := float64(0)
		if freq > 0 {
			r = math.Exp(-freq * math.Pi / (float64(q) * sr))
		}
		theta := 2 * math.Pi * freq / sr
		coef1 := float32(2 * r * math.Cos(theta))
		coef2 := float32(-r * r)
		gain := float32(2 * (1 - r) * math.Sqrt(1-2*r*math.Cos(2*theta)+r*r))

		bp := x + coef1*o.x1 + coef2*o.x2
		bpOut[i] = gain * bp
		lpOut[i] = gain * float32(r) * o.x1
		hpOut[i] = x - coef1*o.x1 - o.x2
		o.x2 = o.x1
		o.x1 = bp
	}
}

func init() {
	graph.RegisterFactory("hip~", newHipSignal)
	graph.RegisterFactory("lop~", newLopSignal)
	graph.RegisterFactory("bp~", newBpSignal)
	graph.RegisterFactory("vcf~", newVcfSignal)
}
