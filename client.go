package dict

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pior/dict/protocol"
)

// DefaultPort is the standard DICT server port.
const DefaultPort = protocol.DefaultPort

// quitTimeout bounds the QUIT write during Close.
const quitTimeout = time.Second

// ErrClosed is returned by operations on a closed session.
var ErrClosed = &protocol.Error{Kind: protocol.KindConnection, Message: "session closed"}

// Config holds configuration for a DICT session.
type Config struct {
	// Dialer is the net.Dialer used to open the TCP connection.
	// If nil, a net.Dialer with DialTimeout is used.
	Dialer *net.Dialer

	// DialTimeout bounds connection establishment when Dialer is nil.
	// Zero means no limit.
	DialTimeout time.Duration

	// ReadTimeout is the deadline applied to an operation whose context has
	// no deadline. Zero means operations may block indefinitely.
	ReadTimeout time.Duration

	// Logger receives debug logs for each exchange.
	// If nil, logging is disabled.
	Logger *zap.Logger

	// for testing purposes only
	dial func(ctx context.Context, addr string) (net.Conn, error)
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		DialTimeout: 10 * time.Second,
	}
}

// Client is a DICT session: one connection to one server.
//
// Every method holds the session lock for its whole exchange, so a Client
// is safe for concurrent use but never interleaves two commands on the
// stream.
type Client struct {
	mu     sync.Mutex
	addr   string
	conn   *Connection
	banner string
	closed bool

	// Database list, populated once on first use.
	databases     []Database
	databaseIndex map[string]int

	logger *zap.Logger
	stats  *clientStatsCollector
}

var _ Querier = (*Client)(nil)

// Open connects to host on the default port with the default configuration.
func Open(ctx context.Context, host string) (*Client, error) {
	return Dial(ctx, net.JoinHostPort(host, strconv.Itoa(DefaultPort)), DefaultConfig())
}

// Dial connects to the DICT server at addr (host:port) and performs the
// handshake. Any failure is a KindConnection error. There is no retry.
func Dial(ctx context.Context, addr string, config Config) (*Client, error) {
	dial := config.dial
	if dial == nil {
		dialer := config.Dialer
		if dialer == nil {
			dialer = &net.Dialer{Timeout: config.DialTimeout}
		}
		dial = func(ctx context.Context, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, "tcp", addr)
		}
	}

	netConn, err := dial(ctx, addr)
	if err != nil {
		return nil, protocol.NewConnectionError("dial "+addr, err)
	}

	client, err := NewClient(ctx, netConn, config)
	if err != nil {
		return nil, err
	}
	client.addr = addr
	return client, nil
}

// NewClient performs the handshake on an established connection.
// The server must greet with status 220, otherwise conn is closed and a
// KindConnection error is returned.
func NewClient(ctx context.Context, netConn net.Conn, config Config) (*Client, error) {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	conn := NewConnection(netConn)
	conn.SetReadTimeout(config.ReadTimeout)

	c := &Client{
		addr:          netConn.RemoteAddr().String(),
		conn:          conn,
		databaseIndex: make(map[string]int),
		logger:        logger,
		stats:         newClientStatsCollector(),
	}

	if err := c.handshake(ctx); err != nil {
		_ = conn.Close()
		logger.Warn("dict: handshake failed", zap.String("addr", c.addr), zap.Error(err))
		return nil, err
	}

	logger.Debug("dict: connected", zap.String("addr", c.addr), zap.String("banner", c.banner))
	return c, nil
}

func (c *Client) handshake(ctx context.Context) error {
	if err := c.conn.Begin(ctx); err != nil {
		return protocol.NewConnectionError("handshake", err)
	}

	status, err := c.conn.ReadStatus()
	if err != nil {
		if protocol.KindOf(err) == protocol.KindConnection {
			return err
		}
		return protocol.NewConnectionError("handshake", err)
	}

	if status.Code != protocol.StatusBanner {
		return &protocol.Error{
			Kind:    protocol.KindConnection,
			Message: "handshake: server not ready",
			Line:    status.Line(),
		}
	}

	c.banner = status.Detail
	return nil
}

// Addr returns the server address.
func (c *Client) Addr() string {
	return c.addr
}

// Banner returns the text of the server greeting.
func (c *Client) Banner() string {
	return c.banner
}

// Stats returns a snapshot of session statistics.
func (c *Client) Stats() ClientStats {
	return c.stats.snapshot()
}

// Close sends QUIT and closes the connection. Errors are ignored: teardown
// never fails. Close may be called more than once.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true

	ctx, cancel := context.WithTimeout(context.Background(), quitTimeout)
	defer cancel()

	if err := c.conn.Begin(ctx); err == nil {
		if err := c.conn.Send(protocol.NewQuitRequest()); err != nil {
			c.logger.Debug("dict: quit failed", zap.String("addr", c.addr), zap.Error(err))
		}
	}

	if err := c.conn.Close(); err != nil {
		c.logger.Debug("dict: close failed", zap.String("addr", c.addr), zap.Error(err))
	}
}

// begin starts an exchange. Must be called with the lock held.
func (c *Client) begin(ctx context.Context) error {
	if c.closed {
		return ErrClosed
	}
	if err := c.conn.Begin(ctx); err != nil {
		return protocol.NewConnectionError("set deadline", err)
	}
	return nil
}

// exchange sends req and reads the initial status line of the reply.
func (c *Client) exchange(req *protocol.Request) (protocol.Status, error) {
	c.logger.Debug("dict: command", zap.String("addr", c.addr), zap.Stringer("request", req))

	if err := c.conn.Send(req); err != nil {
		return protocol.Status{}, err
	}
	c.stats.recordCommand()

	status, err := c.conn.ReadStatus()
	if err != nil {
		return protocol.Status{}, err
	}

	c.logger.Debug("dict: status", zap.String("addr", c.addr), zap.Int("code", int(status.Code)), zap.String("detail", status.Detail))
	return status, nil
}

// expectStatus reads a status line and requires the given code.
func (c *Client) expectStatus(code protocol.StatusCode) (protocol.Status, error) {
	status, err := c.conn.ReadStatus()
	if err != nil {
		return protocol.Status{}, err
	}
	if status.Code != code {
		return protocol.Status{}, protocol.UnexpectedStatus(status)
	}
	return status, nil
}

// readList reads the rows of a list reply and its terminating 250.
// A malformed row fails the list, but the terminating status is still
// consumed so the next exchange starts on a status line.
func (c *Client) readList() ([][]string, error) {
	rows, err := c.conn.ReadAtomBlock(2)
	if err != nil && protocol.KindOf(err) != protocol.KindProtocol {
		return nil, err
	}

	if _, statusErr := c.expectStatus(protocol.StatusOK); statusErr != nil {
		if err != nil {
			return nil, err
		}
		return nil, statusErr
	}
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// fail records and logs a failed operation.
func (c *Client) fail(op string, err error) error {
	c.stats.recordError()
	c.logger.Warn("dict: operation failed", zap.String("addr", c.addr), zap.String("op", op), zap.Error(err))
	return err
}

// Databases returns the databases offered by the server, in server order.
//
// The list is fetched with SHOW DB on first use and cached for the life of
// the session: later calls return the cached list without a round trip,
// and databases added on the server meanwhile are not observed.
func (c *Client) Databases(ctx context.Context) ([]Database, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.loadDatabases(ctx); err != nil {
		return nil, c.fail("databases", err)
	}

	return append([]Database(nil), c.databases...), nil
}

// loadDatabases populates the database cache. Must be called with the lock held.
func (c *Client) loadDatabases(ctx context.Context) error {
	if err := c.begin(ctx); err != nil {
		return err
	}

	if len(c.databases) > 0 {
		return nil
	}

	status, err := c.exchange(protocol.NewShowDBRequest())
	if err != nil {
		return err
	}

	switch status.Code {
	case protocol.StatusDatabaseList:
	case protocol.StatusNoDatabases:
		return nil
	default:
		return protocol.UnexpectedStatus(status)
	}

	rows, err := c.readList()
	if err != nil {
		return err
	}

	for _, atoms := range rows {
		c.addDatabase(Database{Name: atoms[0], Description: atoms[1]})
	}
	c.stats.recordDatabaseList()

	return nil
}

// addDatabase inserts or replaces a database, keeping first arrival order.
func (c *Client) addDatabase(db Database) {
	if i, ok := c.databaseIndex[db.Name]; ok {
		c.databases[i] = db
		return
	}
	c.databaseIndex[db.Name] = len(c.databases)
	c.databases = append(c.databases, db)
}

// lookupDatabase returns the cached database with the given name.
func (c *Client) lookupDatabase(name string) (Database, bool) {
	i, ok := c.databaseIndex[name]
	if !ok {
		return Database{}, false
	}
	return c.databases[i], true
}

// Strategies returns the matching strategies supported by the server.
// The list is fetched on every call.
func (c *Client) Strategies(ctx context.Context) ([]Strategy, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	strategies, err := c.strategies(ctx)
	if err != nil {
		return nil, c.fail("strategies", err)
	}
	return strategies, nil
}

func (c *Client) strategies(ctx context.Context) ([]Strategy, error) {
	if err := c.begin(ctx); err != nil {
		return nil, err
	}

	status, err := c.exchange(protocol.NewShowStratRequest())
	if err != nil {
		return nil, err
	}

	switch status.Code {
	case protocol.StatusStrategyList:
	case protocol.StatusNoStrategies:
		return []Strategy{}, nil
	default:
		return nil, protocol.UnexpectedStatus(status)
	}

	rows, err := c.readList()
	if err != nil {
		return nil, err
	}

	strategies := make([]Strategy, 0, len(rows))
	seen := make(map[Strategy]struct{}, len(rows))
	for _, atoms := range rows {
		s := Strategy{Name: atoms[0], Description: atoms[1]}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		strategies = append(strategies, s)
	}
	c.stats.recordStrategyList()

	return strategies, nil
}

// Match returns the words of database matching word with strategy, in server
// order and without duplicates. No match is an empty result, not an error.
//
// An unknown database fails with protocol.ErrInvalidDatabase, an unknown
// strategy with protocol.ErrInvalidStrategy.
func (c *Client) Match(ctx context.Context, word, strategy, database string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	matches, err := c.match(ctx, word, strategy, database)
	if err != nil {
		return nil, c.fail("match", err)
	}
	c.stats.recordMatch()
	return matches, nil
}

func (c *Client) match(ctx context.Context, word, strategy, database string) ([]string, error) {
	if err := c.begin(ctx); err != nil {
		return nil, err
	}

	status, err := c.exchange(protocol.NewMatchRequest(database, strategy, word))
	if err != nil {
		return nil, err
	}

	switch status.Code {
	case protocol.StatusMatchList:
	case protocol.StatusInvalidDatabase:
		return nil, invalidDatabase(status, database)
	case protocol.StatusInvalidStrategy:
		return nil, &protocol.Error{
			Kind:    protocol.KindInvalidStrategy,
			Message: strategy,
			Line:    status.Line(),
		}
	case protocol.StatusNoMatch:
		return []string{}, nil
	default:
		return nil, &protocol.Error{
			Kind:    protocol.KindProtocol,
			Message: "invalid response",
			Line:    status.Line(),
		}
	}

	rows, err := c.readList()
	if err != nil {
		return nil, err
	}

	matches := make([]string, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, atoms := range rows {
		w := atoms[1]
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		matches = append(matches, w)
	}

	return matches, nil
}

// Define returns the definitions of word in database, in server order.
// A word without definitions is an empty result, not an error.
//
// The database list is loaded first if the session has not fetched it yet.
// Each Definition carries the database the server reports it from, which
// matters for the AllDatabases and FirstMatch pseudo-databases.
func (c *Client) Define(ctx context.Context, word, database string) ([]Definition, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	definitions, err := c.define(ctx, word, database)
	if err != nil {
		return nil, c.fail("define", err)
	}
	c.stats.recordDefine(len(definitions))
	return definitions, nil
}

func (c *Client) define(ctx context.Context, word, database string) ([]Definition, error) {
	if err := c.loadDatabases(ctx); err != nil {
		return nil, err
	}

	status, err := c.exchange(protocol.NewDefineRequest(database, word))
	if err != nil {
		return nil, err
	}

	switch status.Code {
	case protocol.StatusDefinitionsFound:
	case protocol.StatusInvalidDatabase:
		return nil, invalidDatabase(status, database)
	case protocol.StatusNoMatch:
		// No definitions is an answer, as for MATCH.
		return []Definition{}, nil
	default:
		return nil, protocol.UnexpectedStatus(status)
	}

	count, err := parseCount(status)
	if err != nil {
		return nil, err
	}

	// The count is server-supplied: bound the preallocation.
	definitions := make([]Definition, 0, min(count, 64))
	for i := 0; i < count; i++ {
		header, err := c.expectStatus(protocol.StatusDefinition)
		if err != nil {
			return nil, err
		}

		body, err := c.conn.ReadTextBlock()
		if err != nil {
			return nil, err
		}

		definitions = append(definitions, Definition{
			Word:     word,
			Database: c.sourceDatabase(header.Detail, database),
			Body:     body,
		})
	}

	if _, err := c.expectStatus(protocol.StatusOK); err != nil {
		return nil, err
	}

	return definitions, nil
}

// sourceDatabase resolves the database of one definition from its 151
// detail: "word" database "description". Falls back to the requested
// database when the detail does not name one.
func (c *Client) sourceDatabase(detail, requested string) Database {
	atoms := protocol.SplitAtoms(detail)
	if len(atoms) >= 2 {
		if db, ok := c.lookupDatabase(atoms[1]); ok {
			return db
		}
		db := Database{Name: atoms[1]}
		if len(atoms) >= 3 {
			db.Description = atoms[2]
		}
		return db
	}

	if db, ok := c.lookupDatabase(requested); ok {
		return db
	}
	return Database{Name: requested}
}

// parseCount extracts the definition count leading a 150 detail.
func parseCount(status protocol.Status) (int, error) {
	fields := strings.Fields(status.Detail)
	if len(fields) == 0 {
		return 0, protocol.NewProtocolError("missing definition count", status.Line())
	}

	count, err := strconv.Atoi(fields[0])
	if err != nil || count < 0 {
		return 0, protocol.NewProtocolError(fmt.Sprintf("invalid definition count %q", fields[0]), status.Line())
	}
	return count, nil
}

func invalidDatabase(status protocol.Status, database string) error {
	return &protocol.Error{
		Kind:    protocol.KindInvalidDatabase,
		Message: database,
		Line:    status.Line(),
	}
}
