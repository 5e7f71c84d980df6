package transport

import (
	"bufio"
	"errors"
	"io"
	"net"
	"runtime"
	"sync"

	"github.com/battlecode-hq/botclient/protocolerr"
)

// DefaultSocketPath is the Unix domain socket the client dials by default.
const DefaultSocketPath = "/tmp/battlecode.sock"

// DefaultTCPAddr is the fallback address used on platforms without Unix
// domain sockets.
const DefaultTCPAddr = "localhost:6147"

// Transport is a newline-delimited JSON byte stream. Send and Recv each
// handle exactly one frame; framing (appending/stripping the trailing
// '\n') is the transport's job, not the caller's.
type Transport interface {
	// Send writes one frame, appending the newline delimiter.
	Send(frame []byte) error
	// Recv blocks for the next frame, with the trailing newline already
	// stripped. It returns protocolerr.ErrTransportClosed once the peer
	// or a prior Close has ended the stream.
	Recv() ([]byte, error)
	// Close shuts down the underlying connection. Safe to call more than
	// once.
	Close() error
}

// Dial opens the default transport for this platform: a Unix domain
// socket at DefaultSocketPath, or TCP to DefaultTCPAddr where Unix
// sockets aren't available (spec.md section 6).
func Dial() (Transport, error) {
	if runtime.GOOS == "windows" {
		return DialTCP(DefaultTCPAddr)
	}
	return DialUnix(DefaultSocketPath)
}

// DialUnix opens a Unix domain socket transport at path.
func DialUnix(path string) (Transport, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, err
	}
	return newConnTransport(conn), nil
}

// DialTCP opens a TCP transport to addr.
func DialTCP(addr string) (Transport, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return newConnTransport(conn), nil
}

// connTransport adapts a net.Conn to Transport, framing on '\n'.
type connTransport struct {
	conn   net.Conn
	reader *bufio.Reader

	mu     sync.Mutex
	closed bool
}

func newConnTransport(conn net.Conn) *connTransport {
	return &connTransport{conn: conn, reader: bufio.NewReader(conn)}
}

func (t *connTransport) Send(frame []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return protocolerr.ErrTransportClosed
	}
	if _, err := t.conn.Write(append(frame, '\n')); err != nil {
		return err
	}
	return nil
}

func (t *connTransport) Recv() ([]byte, error) {
	line, err := t.reader.ReadBytes('\n')
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
			return nil, protocolerr.ErrTransportClosed
		}
		return nil, err
	}
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line, nil
}

func (t *connTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	return t.conn.Close()
}
