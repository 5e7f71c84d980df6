package battletest

import (
	"sync"

	"github.com/battlecode-hq/botclient/protocolerr"
)

// MemoryTransport is an in-process transport.Transport double: Recv
// replays a scripted sequence of frames, blocking once the script is
// exhausted (as a real socket would) until Close is called, rather than
// immediately reporting end-of-stream. This keeps spec.md section 4.1's
// "no more frames immediately pending" coalescing check deterministic in
// tests instead of racing a background goroutine against a fake that
// never blocks. Send records whatever the caller wrote for later
// assertions.
type MemoryTransport struct {
	frames chan []byte
	closed chan struct{}
	once   sync.Once

	mu   sync.Mutex
	Sent [][]byte
}

// NewMemoryTransport builds a MemoryTransport that replays frames, in
// order, on successive Recv calls.
func NewMemoryTransport(frames ...[]byte) *MemoryTransport {
	ch := make(chan []byte, len(frames))
	for _, f := range frames {
		ch <- f
	}
	return &MemoryTransport{frames: ch, closed: make(chan struct{})}
}

// Send records frame.
func (t *MemoryTransport) Send(frame []byte) error {
	select {
	case <-t.closed:
		return protocolerr.ErrTransportClosed
	default:
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Sent = append(t.Sent, append([]byte(nil), frame...))
	return nil
}

// Recv returns the next scripted frame. Once the script is exhausted it
// blocks until Close is called, then reports protocolerr.ErrTransportClosed.
func (t *MemoryTransport) Recv() ([]byte, error) {
	select {
	case frame := <-t.frames:
		return frame, nil
	case <-t.closed:
		return nil, protocolerr.ErrTransportClosed
	}
}

// Close unblocks any pending Recv and marks the transport closed.
func (t *MemoryTransport) Close() error {
	t.once.Do(func() { close(t.closed) })
	return nil
}
