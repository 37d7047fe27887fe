package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/graph"
)

type fakeDiag struct {
	errors []string
}

func (f *fakeDiag) Errorf(format string, args ...any) {
	f.errors = append(f.errors, format)
}
func (f *fakeDiag) Infof(format string, args ...any) {}

type fakeReceiveSink struct {
	bound []*graph.Buffer
}

func (f *fakeReceiveSink) Rebind(buf *graph.Buffer) {
	f.bound = append(f.bound, buf)
}

func TestRegisterSendRejectsDuplicate(t *testing.T) {
	diag := &fakeDiag{}
	r := New(diag)
	buf1 := graph.NewBuffer(4)
	buf2 := graph.NewBuffer(4)

	r.RegisterSend("foo", buf1)
	r.RegisterSend("foo", buf2)

	assert.Len(t, diag.errors, 1)
	assert.Same(t, buf1, r.SendBuffer("foo"))
}

func TestRegisterReceiveLateAndEarlyBinding(t *testing.T) {
	r := New(&fakeDiag{})
	buf := graph.NewBuffer(4)

	early := &fakeReceiveSink{}
	r.RegisterReceive("foo", early)
	assert.Empty(t, early.bound, "no send~ registered yet")

	r.RegisterSend("foo", buf)
	assert.Equal(t, []*graph.Buffer{buf}, early.bound, "registering send~ rebinds existing receive~")

	late := &fakeReceiveSink{}
	r.RegisterReceive("foo", late)
	assert.Equal(t, []*graph.Buffer{buf}, late.bound, "a receive~ created after send~ binds immediately")
}

func TestUnregisterSendRebindsToNil(t *testing.T) {
	r := New(&fakeDiag{})
	buf := graph.NewBuffer(4)
	sink := &fakeReceiveSink{}
	r.RegisterSend("foo", buf)
	r.RegisterReceive("foo", sink)

	r.UnregisterSend("foo")

	assert.Nil(t, r.SendBuffer("foo"))
	assert.Equal(t, []*graph.Buffer{buf, nil}, sink.bound)
}

type fakeThrow struct{ v []float32 }

func (f *fakeThrow) Buffer() []float32 { return f.v }

type fakeCatch struct {
	throws []ThrowSource
}

func (c *fakeCatch) AddThrow(src ThrowSource) { c.throws = append(c.throws, src) }
func (c *fakeCatch) RemoveThrow(src ThrowSource) {
	for i, t := range c.throws {
		if t == src {
			c.throws = append(c.throws[:i], c.throws[i+1:]...)
			return
		}
	}
}

func TestThrowRegistersIntoExistingCatch(t *testing.T) {
	r := New(&fakeDiag{})
	catch := &fakeCatch{}
	ok := r.RegisterCatch("bus", catch)
	assert.True(t, ok)

	throw := &fakeThrow{v: []float32{1, 2}}
	r.RegisterThrow("bus", throw)
	assert.Equal(t, []ThrowSource{throw}, catch.throws)

	r.UnregisterThrow("bus", throw)
	assert.Empty(t, catch.throws)
}

func TestRegisterCatchRejectsDuplicate(t *testing.T) {
	diag := &fakeDiag{}
	r := New(diag)
	assert.True(t, r.RegisterCatch("bus", &fakeCatch{}))
	assert.False(t, r.RegisterCatch("bus", &fakeCatch{}))
	assert.Len(t, diag.errors, 1)
}

func TestDelayLineWriteThenRead(t *testing.T) {
	sampleRate := 1000.0
	dl := NewDelayLine(50, sampleRate, 4)

	dl.WriteBlock([]float32{1, 2, 3, 4})
	out := make([]float32, 4)
	dl.ReadBlock(0, out)
	assert.Equal(t, []float32{1, 2, 3, 4}, out)

	dl.WriteBlock([]float32{5, 6, 7, 8})
	dl.ReadBlock(4, out) // 4ms = 4 samples at 1kHz
	assert.Equal(t, []float32{1, 2, 3, 4}, out)
}

func TestDelayLineReadBeforeHistoryIsSilence(t *testing.T) {
	dl := NewDelayLine(50, 1000.0, 4)
	dl.WriteBlock([]float32{1, 2, 3, 4})

	out := make([]float32, 4)
	dl.ReadBlock(100, out) // far beyond anything ever written
	assert.Equal(t, []float32{0, 0, 0, 0}, out)
}

func TestArrayAtClampsOutOfRange(t *testing.T) {
	arr := NewArray("tab1", 4)
	arr.Data[2] = 42
	assert.Equal(t, float32(42), arr.At(2))
	assert.Equal(t, float32(0), arr.At(-1))
	assert.Equal(t, float32(0), arr.At(4))
}

func TestRegisterTableRejectsDuplicate(t *testing.T) {
	diag := &fakeDiag{}
	r := New(diag)
	assert.True(t, r.RegisterTable(NewArray("tab1", 4)))
	assert.False(t, r.RegisterTable(NewArray("tab1", 8)))
	assert.Len(t, diag.errors, 1)
}

type fakeMessageSink struct {
	got []atom.Message
}

func (f *fakeMessageSink) Deliver(msg atom.Message) {
	f.got = append(f.got, msg)
}

func TestMessageRouterSendDeliversToSubscribers(t *testing.T) {
	r := New(&fakeDiag{})
	sink := &fakeMessageSink{}
	r.Messages().Subscribe("foo", sink)
	r.Messages().Send("foo", atom.NewSymbolMessage(0, "hi"))
	assert.Len(t, sink.got, 1)

	r.Messages().Send("bar", atom.NewSymbolMessage(0, "nope"))
	assert.Len(t, sink.got, 1, "unrelated name must not deliver")
}

func TestMessageRouterUnsubscribeStopsDelivery(t *testing.T) {
	r := New(&fakeDiag{})
	sink := &fakeMessageSink{}
	r.Messages().Subscribe("foo", sink)
	r.Messages().Unsubscribe("foo", sink)
	r.Messages().Send("foo", atom.NewBangMessage(0))
	assert.Empty(t, sink.got)
}
