package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdrt/pdrt/engine"
)

// runConsole reads line-oriented commands from r until EOF or a
// "quit" line, injecting messages into ctx. Each line is one of:
//
//	send NAME f VALUE     float to every receiver named NAME
//	send NAME s SYMBOL    symbol to every receiver named NAME
//	send NAME b           bang to every receiver named NAME
//	midi CHANNEL NOTE VEL MIDI note-on/off to pdrt_notein_<channel>/_omni
//	quit                  stop the console loop
//
// A line-oriented command loop rather than a curses-style interactive
// shell, matching the host binary's other scriptable entry points.
func runConsole(r io.Reader, w io.Writer, ctx *engine.Context) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "quit", "exit":
			return
		case "send":
			if err := runSend(ctx, fields[1:]); err != nil {
				fmt.Fprintln(w, "error:", err)
			}
		case "midi":
			if err := runMIDI(ctx, fields[1:]); err != nil {
				fmt.Fprintln(w, "error:", err)
			}
		default:
			fmt.Fprintf(w, "unknown command %q\n", fields[0])
		}
	}
}

func runSend(ctx *engine.Context, fields []string) error {
	if len(fields) < 2 {
		return fmt.Errorf("usage: send NAME f|s|b [VALUE]")
	}
	name, kind := fields[0], fields[1]
	switch kind {
	case "f":
		if len(fields) < 3 {
			return fmt.Errorf("send %s f requires a value", name)
		}
		v, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return err
		}
		return ctx.SendMessage(name, "f", v)
	case "s":
		if len(fields) < 3 {
			return fmt.Errorf("send %s s requires a value", name)
		}
		return ctx.SendMessage(name, "s", fields[2])
	case "b":
		return ctx.SendMessage(name, "b")
	default:
		return fmt.Errorf("unknown send kind %q", kind)
	}
}

func runMIDI(ctx *engine.Context, fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("usage: midi CHANNEL NOTE VELOCITY")
	}
	ch, err := strconv.Atoi(fields[0])
	if err != nil {
		return err
	}
	note, err := strconv.ParseFloat(fields[1], 32)
	if err != nil {
		return err
	}
	vel, err := strconv.ParseFloat(fields[2], 32)
	if err != nil {
		return err
	}
	ctx.SendMIDINote(ch, float32(note), float32(vel), 0)
	return nil
}
