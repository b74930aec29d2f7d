package protocol

// CmdType represents a DICT command keyword sequence.
type CmdType string

// StatusCode represents a 3-digit DICT reply code.
type StatusCode int

// Protocol delimiters
const (
	// CRLF is the line terminator for the DICT protocol
	CRLF = "\r\n"

	// Space separates command tokens
	Space = " "

	// Quote delimits atoms containing whitespace
	Quote = '"'

	// EndOfData is the lone line terminating a text block
	EndOfData = "."
)

// MaxLineLength bounds one reply line, terminator included.
const MaxLineLength = 64 * 1024

// DefaultPort is the IANA-assigned port for DICT servers.
const DefaultPort = 2628

// Commands
//
// Each command is written as a single line. Commands are not pipelined:
// one command, then its full reply.
const (
	// CmdShowDB lists the databases available on the server.
	//
	// Wire format: SHOW DB\r\n
	//
	// Response: 110 n databases present, text block of `name "description"` rows, 250
	CmdShowDB CmdType = "SHOW DB"

	// CmdShowStrat lists the matching strategies supported by the server.
	//
	// Wire format: SHOW STRAT\r\n
	//
	// Response: 111 n strategies available, text block of `name "description"` rows, 250
	CmdShowStrat CmdType = "SHOW STRAT"

	// CmdMatch lists words in a database matching a word with a strategy.
	//
	// Wire format: MATCH <database> <strategy> "<word>"\r\n
	//
	// Response: 152 n matches found, text block of `database "word"` rows, 250
	//       or: 550, 551, 552
	CmdMatch CmdType = "MATCH"

	// CmdDefine retrieves the definitions of a word.
	//
	// Wire format: DEFINE <database> "<word>"\r\n
	//
	// Response: 150 n definitions retrieved, then n times
	//           151 "word" database "description" followed by a text block,
	//           then 250
	//       or: 550, 552
	CmdDefine CmdType = "DEFINE"

	// CmdQuit ends the session.
	//
	// Wire format: QUIT\r\n
	//
	// Response: 221
	CmdQuit CmdType = "QUIT"
)

// Status codes consumed by the client
const (
	StatusDatabaseList     StatusCode = 110 // n databases present - text follows
	StatusStrategyList     StatusCode = 111 // n strategies available - text follows
	StatusDefinitionsFound StatusCode = 150 // n definitions retrieved - definitions follow
	StatusDefinition       StatusCode = 151 // word database name - text follows
	StatusMatchList        StatusCode = 152 // n matches found - text follows
	StatusBanner           StatusCode = 220 // text msg-id
	StatusClosing          StatusCode = 221 // Closing Connection
	StatusOK               StatusCode = 250 // ok (optional timing information here)
	StatusInvalidDatabase  StatusCode = 550 // Invalid database, use "SHOW DB" for list of databases
	StatusInvalidStrategy  StatusCode = 551 // Invalid strategy, use "SHOW STRAT" for a list of strategies
	StatusNoMatch          StatusCode = 552 // No match
	StatusNoDatabases      StatusCode = 554 // No databases present
	StatusNoStrategies     StatusCode = 555 // No strategies available
)

// Reserved pseudo-database names
const (
	// AllDatabases searches every database on the server.
	AllDatabases = "*"

	// FirstMatch uses only the first database that yields a result.
	FirstMatch = "!"
)

// DefaultStrategy asks the server to use its default matching strategy.
const DefaultStrategy = "."
