package engine

import (
	"fmt"

	"github.com/pdrt/pdrt/atom"
)

// SendMessage injects a message to every receiver named receiverName
// (the message-variant send/receive router), timestamped for delivery
// at the start of the current block. Format characters describe the
// variadic args: 'f' consumes a float64, 's' a string, 'b' contributes
// a bang with no argument.
func (c *Context) SendMessage(receiverName string, format string, args ...any) error {
	c.lock()
	defer c.unlock()
	msg, err := buildMessage(c.scheduler.BlockStartTimestamp, format, args...)
	if err != nil {
		return err
	}
	c.registry.Messages().Send(receiverName, msg)
	return nil
}

// SendMessageAtBlockIndex injects a message timestamped blockIndex
// samples into the current block (converted to milliseconds), letting
// a host schedule sample-accurate external input.
func (c *Context) SendMessageAtBlockIndex(receiverName string, blockIndex int, format string, args ...any) error {
	c.lock()
	defer c.unlock()
	ts := c.scheduler.ClampTimestamp(c.scheduler.BlockStartTimestamp + float64(blockIndex)*1000.0/c.sampleRate)
	msg, err := buildMessage(ts, format, args...)
	if err != nil {
		return err
	}
	c.registry.Messages().Send(receiverName, msg)
	return nil
}

// SendMIDINote routes a MIDI note-on/off to pdrt_notein_<channel> (0-15)
// and to pdrt_notein_omni, as a two-atom [note velocity] message.
func (c *Context) SendMIDINote(channel int, note, velocity float32, blockIndex int) {
	c.lock()
	defer c.unlock()
	ts := c.scheduler.ClampTimestamp(c.scheduler.BlockStartTimestamp + float64(blockIndex)*1000.0/c.sampleRate)
	msg := atom.NewMessage(ts, atom.Float(note), atom.Float(velocity))
	c.registry.Messages().Send(fmt.Sprintf("pdrt_notein_%d", channel), msg)
	c.registry.Messages().Send("pdrt_notein_omni", msg)
}

func buildMessage(ts float64, format string, args ...any) (atom.Message, error) {
	var atoms []atom.Atom
	i := 0
	for _, f := range format {
		switch f {
		case 'f':
			if i >= len(args) {
				return atom.Message{}, fmt.Errorf("format %q: missing float argument", format)
			}
			v, ok := args[i].(float64)
			if !ok {
				return atom.Message{}, fmt.Errorf("format %q: argument %d is not a float64", format, i)
			}
			atoms = append(atoms, atom.Float(float32(v)))
			i++
		case 's':
			if i >= len(args) {
				return atom.Message{}, fmt.Errorf("format %q: missing symbol argument", format)
			}
			v, ok := args[i].(string)
			if !ok {
				return atom.Message{}, fmt.Errorf("format %q: argument %d is not a string", format, i)
			}
			atoms = append(atoms, atom.Symbol(v))
			i++
		case 'b':
			atoms = append(atoms, atom.Bang())
		default:
			return atom.Message{}, fmt.Errorf("format %q: unknown format character %q", format, f)
		}
	}
	return atom.Message{Timestamp: ts, Atoms: atoms}, nil
}
