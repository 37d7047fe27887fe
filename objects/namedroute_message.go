package objects

import (
	"github.com/pdrt/pdrt/atom"
	"github.com/pdrt/pdrt/graph"
)

// sendMessage (send/s) forwards whatever message arrives on its one
// inlet to every receive/r of the same name, through the registry's
// message router.
type sendMessage struct {
	*graph.Base
	name string
}

func newSendMessage(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &sendMessage{name: firstSymbol(init)}
	o.Base = graph.NewBase(o, "send", g, 1, 0, 0, 0)
	o.SetLeaf(true)
	return o, nil
}

func (o *sendMessage) ProcessMessage(inlet int, msg atom.Message) {
	if inlet == 0 {
		registryOf(o.Graph()).Messages().Send(o.name, msg)
	}
}

// receiveMessage (receive/r) re-emits every message sent to its name.
type receiveMessage struct {
	*graph.Base
	name string
}

func newReceiveMessage(g *graph.Graph, init atom.Message) (graph.Object, error) {
	o := &receiveMessage{name: firstSymbol(init)}
	o.Base = graph.NewBase(o, "receive", g, 0, 1, 0, 0)
	o.SetRoot(true)
	registryOf(g).Messages().Subscribe(o.name, o)
	return o, nil
}

func (o *receiveMessage) Deliver(msg atom.Message) { o.SendMessage(0, msg) }

func init() {
	graph.RegisterFactory("send", newSendMessage)
	graph.RegisterFactory("s", newSendMessage)
	graph.RegisterFactory("receive", newReceiveMessage)
	graph.RegisterFactory("r", newReceiveMessage)
}
