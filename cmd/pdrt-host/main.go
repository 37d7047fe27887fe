// Command pdrt-host is an example embedding: it loads a Pd patch file,
// drives engine.Context.Process from a live portaudio stream, and lets
// an operator inject messages from stdin while it runs. Real embedders
// will replace the portaudio plumbing with their own audio pipeline;
// everything downstream of engine.NewContext is the intended API
// surface.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gordonklaus/portaudio"
	flag "github.com/spf13/pflag"

	"github.com/pdrt/pdrt/engine"
	"github.com/pdrt/pdrt/internal/diag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "pdrt-host:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath  = flag.String("config", "", "YAML file of host defaults (overridden by flags)")
		inChannels  = flag.Int("in", 0, "input channel count")
		outChannels = flag.Int("out", 2, "output channel count")
		sampleRate  = flag.Float64("rate", 44100, "sample rate in Hz")
		blockSize   = flag.Int("blocksize", 64, "block size in samples")
		verbose     = flag.BoolP("verbose", "v", false, "enable debug-level diagnostics")
		searchPath  = flag.StringArray("path", nil, "abstraction search path (repeatable)")
	)
	flag.Parse()

	if *configPath != "" {
		d, err := loadHostDefaults(*configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		applyDefaults(&d, inChannels, outChannels, sampleRate, blockSize, searchPath)
	}

	if flag.NArg() < 1 {
		return fmt.Errorf("usage: pdrt-host [flags] patch.pd")
	}
	patchPath := flag.Arg(0)

	opts := []diag.Option{}
	if *verbose {
		opts = append(opts, diag.WithLevel(log.DebugLevel))
	}
	sink := diag.New(os.Stderr, opts...)

	ctx := engine.NewContext(*inChannels, *outChannels, *blockSize, *sampleRate, sink)
	if _, err := ctx.LoadPatch(patchPath, flag.Args()[1:], *searchPath...); err != nil {
		return fmt.Errorf("loading patch: %w", err)
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initializing audio: %w", err)
	}
	defer portaudio.Terminate()

	stream, err := openStream(ctx, *inChannels, *outChannels, *sampleRate, *blockSize)
	if err != nil {
		return fmt.Errorf("opening audio stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("starting audio stream: %w", err)
	}
	defer stream.Stop()

	sink.Infof("pdrt-host: running %s (%d in / %d out @ %.0fHz, block %d)", patchPath, *inChannels, *outChannels, *sampleRate, *blockSize)
	runConsole(os.Stdin, os.Stdout, ctx)
	return nil
}

func applyDefaults(d *hostDefaults, in, out *int, rate *float64, block *int, paths *[]string) {
	if d.InChannels > 0 && !flag.CommandLine.Changed("in") {
		*in = d.InChannels
	}
	if d.OutChannels > 0 && !flag.CommandLine.Changed("out") {
		*out = d.OutChannels
	}
	if d.SampleRate > 0 && !flag.CommandLine.Changed("rate") {
		*rate = d.SampleRate
	}
	if d.BlockSize > 0 && !flag.CommandLine.Changed("blocksize") {
		*block = d.BlockSize
	}
	if len(d.SearchPaths) > 0 {
		*paths = append(*paths, d.SearchPaths...)
	}
}
