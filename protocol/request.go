package protocol

import (
	"bufio"
	"io"
	"strings"
)

// Request represents a DICT command line.
// This is a low-level container without validation: parameters are
// written verbatim, separated by spaces.
type Request struct {
	// Command is the command keyword(s): SHOW DB, MATCH, DEFINE, ...
	Command CmdType

	// Params follow the command on the same line.
	// Quoted parameters already carry their quotes.
	Params []string
}

// NewShowDBRequest creates a SHOW DB request.
func NewShowDBRequest() *Request {
	return &Request{Command: CmdShowDB}
}

// NewShowStratRequest creates a SHOW STRAT request.
func NewShowStratRequest() *Request {
	return &Request{Command: CmdShowStrat}
}

// NewMatchRequest creates a MATCH request.
// Embedded quotes in word are not escaped.
func NewMatchRequest(database, strategy, word string) *Request {
	return &Request{
		Command: CmdMatch,
		Params:  []string{database, strategy, QuoteAtom(word)},
	}
}

// NewDefineRequest creates a DEFINE request.
// Embedded quotes in word are not escaped.
func NewDefineRequest(database, word string) *Request {
	return &Request{
		Command: CmdDefine,
		Params:  []string{database, QuoteAtom(word)},
	}
}

// NewQuitRequest creates a QUIT request.
func NewQuitRequest() *Request {
	return &Request{Command: CmdQuit}
}

// QuoteAtom wraps s in double quotes.
func QuoteAtom(s string) string {
	return string(Quote) + s + string(Quote)
}

// String returns the request line without its terminator.
func (r *Request) String() string {
	if len(r.Params) == 0 {
		return string(r.Command)
	}
	return string(r.Command) + Space + strings.Join(r.Params, Space)
}

// WriteRequest writes the request line to w.
// A *bufio.Writer is flushed so the command reaches the server.
func WriteRequest(w io.Writer, req *Request) error {
	return WriteLine(w, req.String())
}

// WriteLine writes line followed by CRLF. No reply is read.
// Write failures are returned as KindConnection errors.
func WriteLine(w io.Writer, line string) error {
	if bw, ok := w.(*bufio.Writer); ok {
		bw.WriteString(line)
		bw.WriteString(CRLF)
		if err := bw.Flush(); err != nil {
			return NewConnectionError("write line", err)
		}
		return nil
	}

	if _, err := io.WriteString(w, line+CRLF); err != nil {
		return NewConnectionError("write line", err)
	}
	return nil
}
