package stream

// Event is posted back to the manager's event loop. Seq ties it to the
// connection attempt that produced it.
type Event interface {
	attempt() uint64
}

// Opened reports that the server accepted the stream request.
type Opened struct {
	Seq uint64
}

// Line carries one raw line from the stream.
type Line struct {
	Seq  uint64
	Text string
}

// Failed reports that the transport ended without being cancelled.
type Failed struct {
	Seq uint64
	Err error
}

// Retry fires when a reconnect delay elapses.
type Retry struct {
	Seq uint64
}

func (e Opened) attempt() uint64 { return e.Seq }
func (e Line) attempt() uint64   { return e.Seq }
func (e Failed) attempt() uint64 { return e.Seq }
func (e Retry) attempt() uint64  { return e.Seq }
