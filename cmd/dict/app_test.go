package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pior/dict/internal/testutils"
	"github.com/pior/dict/protocol"
)

func newTestServer(t *testing.T) *testutils.Server {
	server := testutils.NewServer(t)
	server.Handle("SHOW DB",
		"110 2 databases present",
		`web1 "Webster's Revised Unabridged Dictionary (1913)"`,
		`wn "WordNet (r) 3.0 (2006)"`,
		".",
		"250 ok",
	)
	server.Handle("SHOW STRAT",
		"111 2 strategies available",
		`exact "Match headwords exactly"`,
		`prefix "Match prefixes"`,
		".",
		"250 ok",
	)
	server.Handle(`MATCH * prefix "tes"`,
		"152 3 matches found",
		`wn "test"`,
		`wn "testa"`,
		`web1 "test"`,
		".",
		"250 ok",
	)
	server.Handle(`MATCH * . "zzzz"`, "552 no match")
	server.Handle(`MATCH nope . "test"`, "550 invalid database")
	server.Handle(`DEFINE wn "test"`,
		"150 1 definitions retrieved",
		`151 "test" wn "WordNet (r) 3.0 (2006)"`,
		"test",
		"    n 1: trying something to find out about it",
		".",
		"250 ok",
	)
	return server
}

// run executes the app against server and returns its output.
func run(t *testing.T, server *testutils.Server, args ...string) (string, error) {
	t.Helper()

	host, port, err := net.SplitHostPort(server.Addr())
	require.NoError(t, err)

	var out bytes.Buffer
	app := newDictApp()
	app.Writer = &out
	app.ErrWriter = io.Discard

	argv := append([]string{"dict", "--server", host, "--port", port}, args...)
	err = app.Run(argv)
	return out.String(), err
}

func TestApp_Databases(t *testing.T) {
	server := newTestServer(t)

	out, err := run(t, server, "databases")
	require.NoError(t, err)

	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "Webster's Revised Unabridged Dictionary (1913)")
	assert.Contains(t, out, "WordNet (r) 3.0 (2006)")
}

func TestApp_Strategies(t *testing.T) {
	server := newTestServer(t)

	out, err := run(t, server, "strategies")
	require.NoError(t, err)

	assert.Contains(t, out, "exact")
	assert.Contains(t, out, "Match prefixes")
}

func TestApp_Match(t *testing.T) {
	server := newTestServer(t)

	out, err := run(t, server, "match", "--strategy", "prefix", "tes")
	require.NoError(t, err)
	assert.Equal(t, "test\ntesta\n", out)

	out, err = run(t, server, "match", "zzzz")
	require.NoError(t, err)
	assert.Equal(t, "No matches for \"zzzz\"\n", out)
}

func TestApp_MatchInvalidDatabase(t *testing.T) {
	server := newTestServer(t)

	_, err := run(t, server, "match", "-d", "nope", "test")
	require.Error(t, err)
	assert.ErrorIs(t, err, protocol.ErrInvalidDatabase)
	assert.Equal(t, ExitCodeInvalidName, exitCode(err))
}

func TestApp_Define(t *testing.T) {
	server := newTestServer(t)

	out, err := run(t, server, "define", "-d", "wn", "test")
	require.NoError(t, err)

	assert.Equal(t, "From WordNet (r) 3.0 (2006) [wn]:\n\ntest\n    n 1: trying something to find out about it\n\n", out)
	assert.Equal(t, 1, server.CountCommand("SHOW DB"))
}

func TestApp_Usage(t *testing.T) {
	server := newTestServer(t)

	_, err := run(t, server, "define")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUsage)
	assert.Equal(t, ExitCodeUsage, exitCode(err))

	// Nothing was sent: arguments are checked before dialing
	assert.Empty(t, server.Commands())
}

func TestApp_ServerDown(t *testing.T) {
	server := testutils.NewServer(t)
	server.Close()

	// Each invocation dials afresh and reports the refused connection
	for i := 0; i < 4; i++ {
		_, err := run(t, server, "databases")
		require.Error(t, err)
		assert.ErrorIs(t, err, protocol.ErrConnection)
		assert.Equal(t, ExitCodeFailure, exitCode(err))
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitCodeSuccess},
		{errors.New("boom"), ExitCodeFailure},
		{&protocol.Error{Kind: protocol.KindInvalidStrategy}, ExitCodeInvalidName},
		{fmt.Errorf("%w: bad", ErrUsage), ExitCodeUsage},
		{protocol.NewProtocolError("invalid response", "999"), ExitCodeFailure},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, exitCode(tt.err), "exitCode(%v)", tt.err)
	}
}
