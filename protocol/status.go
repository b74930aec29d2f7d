package protocol

import (
	"bufio"
	"strconv"
)

// Status is a parsed reply line: a 3-digit code and its free text.
type Status struct {
	Code   StatusCode
	Detail string
}

// Line returns the status in wire form, without the line terminator.
func (s Status) Line() string {
	line := strconv.Itoa(int(s.Code))
	if s.Detail != "" {
		line += Space + s.Detail
	}
	return line
}

// Is reports whether the status has the given code.
func (s Status) Is(code StatusCode) bool {
	return s.Code == code
}

// ParseStatus parses a reply line.
// Format: <ddd>[ <detail>]
//
// The line must start with exactly three ASCII digits. When more text
// follows, a single space separates the code from the detail, and the
// detail is everything after that space. The code is not validated
// against the set of known codes.
func ParseStatus(line string) (Status, error) {
	if len(line) < 3 || !isDigit(line[0]) || !isDigit(line[1]) || !isDigit(line[2]) {
		return Status{}, NewProtocolError("malformed status line", line)
	}

	code := StatusCode(int(line[0]-'0')*100 + int(line[1]-'0')*10 + int(line[2]-'0'))

	if len(line) == 3 {
		return Status{Code: code}, nil
	}

	if line[3] != ' ' {
		return Status{}, NewProtocolError("malformed status line", line)
	}

	return Status{Code: code, Detail: line[4:]}, nil
}

// ReadStatus reads one line from r and parses it as a status.
// A stream that ends before a line is available fails with KindConnection.
func ReadStatus(r *bufio.Reader) (Status, error) {
	line, err := ReadLine(r)
	if err != nil {
		return Status{}, err
	}
	return ParseStatus(line)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
