package protocol

import (
	"bufio"
	"strings"
)

// ReadLine reads one line from r and returns it without its terminator.
// CRLF is expected; a bare LF is tolerated.
//
// Any read failure, including io.EOF before a complete line, is returned
// as a KindConnection error: the caller expected a line and none came.
// A line longer than MaxLineLength fails with KindProtocol.
func ReadLine(r *bufio.Reader) (string, error) {
	var buf []byte

	for {
		chunk, err := r.ReadSlice('\n')
		buf = append(buf, chunk...)
		if len(buf) > MaxLineLength {
			return "", NewProtocolError("line too long", string(buf[:64]))
		}

		if err == nil {
			break
		}
		if err != bufio.ErrBufferFull {
			return "", NewConnectionError("read line", err)
		}
	}

	line := strings.TrimSuffix(string(buf), "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

// ReadTextBlock reads the lines of a text block up to the lone "."
// terminator, which is consumed and not returned.
//
// Dot-stuffing is undone: a line starting with ".." is returned with its
// first dot removed. Other lines are returned verbatim.
//
// Example block:
//
//	wn "WordNet (r) 3.0 (2006)"
//	gcide "The Collaborative International Dictionary of English"
//	.
func ReadTextBlock(r *bufio.Reader) ([]string, error) {
	var lines []string

	for {
		line, err := ReadLine(r)
		if err != nil {
			return nil, err
		}

		if line == EndOfData {
			return lines, nil
		}

		if strings.HasPrefix(line, "..") {
			line = line[1:]
		}

		lines = append(lines, line)
	}
}

// ReadAtomBlock reads a text block whose rows are atom lists, such as the
// replies to SHOW DB, SHOW STRAT and MATCH. Each row must hold at least
// minAtoms atoms, otherwise the block fails with KindProtocol.
//
// The whole block is consumed before a malformed row is reported, so the
// caller can still read the terminating status line.
func ReadAtomBlock(r *bufio.Reader, minAtoms int) ([][]string, error) {
	lines, err := ReadTextBlock(r)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		atoms := SplitAtoms(line)
		if len(atoms) < minAtoms {
			return nil, NewProtocolError("malformed data line", line)
		}
		rows = append(rows, atoms)
	}

	return rows, nil
}
