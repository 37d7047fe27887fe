package engine

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/internal/diag"
	"github.com/pdrt/pdrt/patch"
)

func newTestContext(t *testing.T) (*Context, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	sink := diag.New(&buf)
	return NewContext(2, 2, 64, 44100, sink), &buf
}

func TestOscToDACProducesExpectedFrequency(t *testing.T) {
	ctx, diagBuf := newTestContext(t)
	patchText := "#N canvas 0 0 450 300 10;\n#X obj 10 10 osc~ 440;\n#X obj 10 40 dac~ 1;\n#X connect 0 0 1 0;\n"
	g := ctx.NewEmptyGraph(nil)
	require.NoError(t, patch.Parse(g, patchText, ctx.Diag(), nil))
	ctx.AttachGraph(g)
	assert.Empty(t, diagBuf.String())

	input := [][]float32{make([]float32, 64), make([]float32, 64)}
	output := [][]float32{make([]float32, 64), make([]float32, 64)}
	ctx.Process(input, output)

	// osc~ at 440Hz, 44100Hz sample rate: first sample is sin(0)=0.
	assert.InDelta(t, 0.0, output[0][0], 1e-3)

	expectedPhaseStep := 440.0 / 44100.0
	expectedSample1 := math.Sin(2 * math.Pi * expectedPhaseStep)
	assert.InDelta(t, expectedSample1, output[0][1], 1e-3)
}

func TestSendReceiveSignalAliasesAcrossPatches(t *testing.T) {
	ctx, _ := newTestContext(t)

	senderText := "#N canvas 0 0 450 300 10;\n#X obj 10 10 osc~ 220;\n#X obj 10 40 send~ bus;\n#X connect 0 0 1 0;\n"
	receiverText := "#N canvas 0 0 450 300 10;\n#X obj 10 10 receive~ bus;\n#X obj 10 40 dac~ 1;\n#X connect 0 0 1 0;\n"

	senderGraph := ctx.NewEmptyGraph(nil)
	require.NoError(t, patch.Parse(senderGraph, senderText, ctx.Diag(), nil))
	ctx.AttachGraph(senderGraph)

	receiverGraph := ctx.NewEmptyGraph(nil)
	require.NoError(t, patch.Parse(receiverGraph, receiverText, ctx.Diag(), nil))
	ctx.AttachGraph(receiverGraph)

	input := [][]float32{make([]float32, 64), make([]float32, 64)}
	output := [][]float32{make([]float32, 64), make([]float32, 64)}
	ctx.Process(input, output)

	// 220Hz osc~ also starts at phase 0, so its first sample is 0 too.
	assert.InDelta(t, 0.0, output[0][0], 1e-3)
}

func TestDuplicateSendTildeReportsDiagnosticNotPanic(t *testing.T) {
	ctx, logBuf := newTestContext(t)
	patchText := "#N canvas 0 0 450 300 10;\n" +
		"#X obj 10 10 osc~ 100;\n" +
		"#X obj 10 40 send~ bus;\n" +
		"#X obj 10 70 osc~ 200;\n" +
		"#X obj 10 100 send~ bus;\n" +
		"#X connect 0 0 1 0;\n" +
		"#X connect 2 0 3 0;\n"
	g := ctx.NewEmptyGraph(nil)

	assert.NotPanics(t, func() {
		require.NoError(t, patch.Parse(g, patchText, ctx.Diag(), nil))
	})
	ctx.AttachGraph(g)
	assert.Contains(t, logBuf.String(), "duplicate")
}

func TestMetroTicksAtConfiguredPeriod(t *testing.T) {
	ctx, _ := newTestContext(t)
	patchText := "#N canvas 0 0 450 300 10;\n" +
		"#X obj 10 10 loadbang;\n" +
		"#X obj 10 40 metro 1;\n" +
		"#X obj 10 70 send count;\n" +
		"#X connect 0 0 1 0;\n" +
		"#X connect 1 0 2 0;\n"
	g := ctx.NewEmptyGraph(nil)
	require.NoError(t, patch.Parse(g, patchText, ctx.Diag(), nil))

	counter := &tickCounter{}
	ctx.registry.Messages().Subscribe("count", counter)

	ctx.AttachGraph(g) // fires loadbang, which starts the metro

	blockSize := ctx.BlockSize()
	input := [][]float32{make([]float32, blockSize), make([]float32, blockSize)}
	output := [][]float32{make([]float32, blockSize), make([]float32, blockSize)}
	// 50 blocks at 64 samples / 44100Hz is roughly 72ms; a 1ms metro
	// should have ticked a large number of times in that span.
	for i := 0; i < 50; i++ {
		ctx.Process(input, output)
	}

	assert.Greater(t, counter.count, 40)
}

// tickCounter implements registry.MessageSink, counting deliveries.
type tickCounter struct {
	count int
}

func (c *tickCounter) Deliver(msg atom.Message) { c.count++ }

func TestDelwriteDelreadRoundTripsAfterConfiguredDelay(t *testing.T) {
	ctx, _ := newTestContext(t)
	patchText := "#N canvas 0 0 450 300 10;\n" +
		"#X obj 10 10 osc~ 220;\n" +
		"#X obj 10 40 delwrite~ dl 50;\n" +
		"#X obj 10 70 delread~ dl 0;\n" +
		"#X obj 10 100 dac~ 1;\n" +
		"#X connect 0 0 1 0;\n" +
		"#X connect 2 0 3 0;\n"
	g := ctx.NewEmptyGraph(nil)
	require.NoError(t, patch.Parse(g, patchText, ctx.Diag(), nil))
	ctx.AttachGraph(g)

	blockSize := ctx.BlockSize()
	input := [][]float32{make([]float32, blockSize), make([]float32, blockSize)}
	output := [][]float32{make([]float32, blockSize), make([]float32, blockSize)}
	ctx.Process(input, output)

	// delread~ at 0ms delay mirrors delwrite~'s input from the same
	// block (write precedes read in DSP order), so the first output
	// sample should match osc~'s own first sample.
	assert.InDelta(t, 0.0, output[0][0], 1e-3)
}
