package dict

import (
	"bufio"
	"context"
	"net"
	"time"

	"github.com/pior/dict/protocol"
)

// Connection is the line transport of a session: one net.Conn with a
// buffered reader and writer. It is not safe for concurrent use, the
// Client serializes access.
type Connection struct {
	conn        net.Conn
	reader      *bufio.Reader
	writer      *bufio.Writer
	readTimeout time.Duration
}

// NewConnection wraps conn.
func NewConnection(conn net.Conn) *Connection {
	return &Connection{
		conn:   conn,
		reader: bufio.NewReader(conn),
		writer: bufio.NewWriter(conn),
	}
}

// SetReadTimeout sets the deadline applied to exchanges whose context has
// none. Zero means no deadline.
func (c *Connection) SetReadTimeout(timeout time.Duration) {
	c.readTimeout = timeout
}

// Begin prepares the connection for one exchange. The deadline comes from
// ctx, or from the read timeout, or is cleared.
func (c *Connection) Begin(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if deadline, ok := ctx.Deadline(); ok {
		return c.conn.SetDeadline(deadline)
	}
	if c.readTimeout > 0 {
		return c.conn.SetDeadline(time.Now().Add(c.readTimeout))
	}
	return c.conn.SetDeadline(time.Time{})
}

// Send writes a command line.
func (c *Connection) Send(req *protocol.Request) error {
	return protocol.WriteRequest(c.writer, req)
}

// WriteLine writes text followed by CRLF.
func (c *Connection) WriteLine(text string) error {
	return protocol.WriteLine(c.writer, text)
}

// ReadLine blocks until a full line is available and returns it without
// its terminator.
func (c *Connection) ReadLine() (string, error) {
	return protocol.ReadLine(c.reader)
}

// ReadStatus reads and parses a status line.
func (c *Connection) ReadStatus() (protocol.Status, error) {
	return protocol.ReadStatus(c.reader)
}

// ReadTextBlock reads lines up to the "." terminator.
func (c *Connection) ReadTextBlock() ([]string, error) {
	return protocol.ReadTextBlock(c.reader)
}

// ReadAtomBlock reads a text block of atom rows of at least minAtoms atoms.
func (c *Connection) ReadAtomBlock(minAtoms int) ([][]string, error) {
	return protocol.ReadAtomBlock(c.reader, minAtoms)
}

// RemoteAddr returns the server address.
func (c *Connection) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Close closes the underlying connection.
func (c *Connection) Close() error {
	return c.conn.Close()
}
