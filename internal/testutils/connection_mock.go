package testutils

import (
	"bytes"
	"errors"
	"net"
	"strings"
	"time"
)

// ConnectionMock is a mock implementation of net.Conn for testing.
// Reads are served from scripted server lines, writes are recorded.
type ConnectionMock struct {
	readBuf  *bytes.Buffer
	writeBuf *bytes.Buffer
	closed   bool

	// WriteErr, when set, is returned by every Write.
	WriteErr error
}

// NewConnectionMock creates a mock connection replaying the given server
// lines. Each line is terminated with CRLF.
func NewConnectionMock(lines ...string) *ConnectionMock {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteString("\r\n")
	}
	return &ConnectionMock{
		readBuf:  bytes.NewBufferString(sb.String()),
		writeBuf: &bytes.Buffer{},
	}
}

func (m *ConnectionMock) Read(b []byte) (n int, err error) {
	if m.closed {
		return 0, net.ErrClosed
	}
	return m.readBuf.Read(b)
}

func (m *ConnectionMock) Write(b []byte) (n int, err error) {
	if m.closed {
		return 0, net.ErrClosed
	}
	if m.WriteErr != nil {
		return 0, m.WriteErr
	}
	return m.writeBuf.Write(b)
}

func (m *ConnectionMock) Close() error {
	if m.closed {
		return errors.New("already closed")
	}
	m.closed = true
	return nil
}

// IsClosed reports whether Close was called.
func (m *ConnectionMock) IsClosed() bool {
	return m.closed
}

func (m *ConnectionMock) LocalAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0}
}

func (m *ConnectionMock) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 2628}
}

func (m *ConnectionMock) SetDeadline(t time.Time) error      { return nil }
func (m *ConnectionMock) SetReadDeadline(t time.Time) error  { return nil }
func (m *ConnectionMock) SetWriteDeadline(t time.Time) error { return nil }

// GetWrittenRequest returns the raw request bytes written to the mock connection
func (m *ConnectionMock) GetWrittenRequest() string {
	return m.writeBuf.String()
}

// Commands returns the command lines written, without terminators.
func (m *ConnectionMock) Commands() []string {
	written := strings.TrimSuffix(m.writeBuf.String(), "\r\n")
	if written == "" {
		return nil
	}
	return strings.Split(written, "\r\n")
}
