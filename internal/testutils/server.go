package testutils

import (
	"bufio"
	"net"
	"strings"
	"sync"
	"testing"
)

// Server is a scripted DICT server listening on a loopback port.
//
// It greets every connection with a 220 banner, then answers each command line
// with the lines registered for it. Unknown commands get a 500 reply.
// QUIT is answered with 221 and closes the connection.
type Server struct {
	listener net.Listener
	mu       sync.Mutex
	banner   string
	replies  map[string][]string
	commands []string
	conns    map[net.Conn]struct{}
	wg       sync.WaitGroup
}

// NewServer starts a server and stops it when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to start test server: %v", err)
	}

	s := &Server{
		banner:   "220 test.dict.local dictd 1.0 <auth.mime> <1@test.dict.local>",
		listener: listener,
		replies:  make(map[string][]string),
		conns:    make(map[net.Conn]struct{}),
	}

	s.wg.Add(1)
	go s.serve()

	t.Cleanup(s.Close)
	return s
}

// Addr returns the host:port the server listens on.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// SetBanner replaces the greeting sent to new connections.
func (s *Server) SetBanner(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.banner = line
}

// Handle registers the reply lines for a command line.
func (s *Server) Handle(command string, lines ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[command] = lines
}

// Commands returns the command lines received so far, in order.
func (s *Server) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}

// CountCommand returns how many times command was received.
func (s *Server) CountCommand(command string) int {
	n := 0
	for _, c := range s.Commands() {
		if c == command {
			n++
		}
	}
	return n
}

// Close stops accepting connections, drops open ones and waits for
// handlers to finish.
func (s *Server) Close() {
	s.listener.Close()

	s.mu.Lock()
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Server) serve() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		s.conns[conn] = struct{}{}
		s.mu.Unlock()

		s.wg.Add(1)
		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer s.wg.Done()
	defer func() {
		conn.Close()
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
	}()

	s.mu.Lock()
	banner := s.banner
	s.mu.Unlock()

	w := bufio.NewWriter(conn)
	writeLines(w, banner)

	r := bufio.NewReader(conn)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		command := strings.TrimRight(line, "\r\n")

		s.mu.Lock()
		s.commands = append(s.commands, command)
		reply, ok := s.replies[command]
		s.mu.Unlock()

		if command == "QUIT" && !ok {
			writeLines(w, "221 bye")
			return
		}
		if !ok {
			reply = []string{"500 unknown command"}
		}
		if !writeLines(w, reply...) {
			return
		}
	}
}

func writeLines(w *bufio.Writer, lines ...string) bool {
	for _, line := range lines {
		w.WriteString(line)
		w.WriteString("\r\n")
	}
	return w.Flush() == nil
}
