// Package protocol provides a low-level wire implementation of the DICT
// protocol (RFC 2229), the subset needed for anonymous lookups.
//
// This package serves as a foundation for DICT clients. It covers
// serialization of command lines and parsing of reply lines and text
// blocks, without managing connections.
//
// # Reply Lines
//
// Every reply starts with a status line, a 3-digit code optionally
// followed by a space and free text:
//
//	status, err := protocol.ReadStatus(r)
//	if err != nil {
//	    return err
//	}
//	if status.Code != protocol.StatusDatabaseList {
//	    return protocol.UnexpectedStatus(status)
//	}
//
// # Text Blocks
//
// Some replies carry a block of lines terminated by a lone ".". List
// replies hold rows of atoms, whitespace separated words where a double
// quoted string counts as one atom:
//
//	rows, err := protocol.ReadAtomBlock(r, 2)
//	for _, atoms := range rows {
//	    name, description := atoms[0], atoms[1]
//	}
//
// Definition bodies are read line by line with ReadTextBlock.
//
// # Requests
//
//	protocol.WriteRequest(w, protocol.NewDefineRequest("wn", "test"))
//	// DEFINE wn "test"\r\n
//
// Words are quoted but not escaped: a word holding a double quote
// produces a malformed command.
//
// # Error Handling
//
// All failures are *Error values tagged with a Kind:
//
//   - KindConnection: I/O failure or premature close, CLOSE connection
//   - KindProtocol: unexpected status or malformed line, CLOSE connection
//   - KindInvalidDatabase: 550, connection can be REUSED
//   - KindInvalidStrategy: 551, connection can be REUSED
//
// Use errors.Is with ErrConnection, ErrProtocol, ErrInvalidDatabase and
// ErrInvalidStrategy, or ShouldCloseConnection:
//
//	if protocol.ShouldCloseConnection(err) {
//	    conn.Close()
//	}
//
// # Thread Safety
//
// Functions hold no state. Readers and writers must not be shared
// between goroutines without synchronization.
package protocol
