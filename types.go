package dict

import (
	"strings"

	"github.com/pior/dict/protocol"
)

// Reserved pseudo-database names.
const (
	// AllDatabases searches every database on the server.
	AllDatabases = protocol.AllDatabases

	// FirstMatch uses only the first database that yields a result.
	FirstMatch = protocol.FirstMatch
)

// DefaultStrategy selects the server's default matching strategy.
const DefaultStrategy = protocol.DefaultStrategy

// Database identifies a dictionary corpus on the server.
type Database struct {
	Name        string // Protocol identifier, unique per server
	Description string // Human-readable description
}

// IsPseudo reports whether the database is one of the reserved names
// AllDatabases or FirstMatch.
func (d Database) IsPseudo() bool {
	return d.Name == AllDatabases || d.Name == FirstMatch
}

func (d Database) String() string {
	return d.Name
}

// Strategy identifies a matching algorithm used by Match (exact, prefix, ...).
type Strategy struct {
	Name        string
	Description string
}

func (s Strategy) String() string {
	return s.Name
}

// Definition is one dictionary entry returned by Define.
type Definition struct {
	Word     string   // Queried word
	Database Database // Database the entry comes from
	Body     []string // Entry text, one element per line
}

// Text returns the body lines joined with newlines.
func (d Definition) Text() string {
	return strings.Join(d.Body, "\n")
}
