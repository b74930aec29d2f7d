package protocol

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIs(t *testing.T) {
	err := NewConnectionError("read line", io.EOF)

	assert.ErrorIs(t, err, ErrConnection)
	assert.ErrorIs(t, err, io.EOF)
	assert.NotErrorIs(t, err, ErrProtocol)

	wrapped := fmt.Errorf("define: %w", &Error{Kind: KindInvalidDatabase, Line: "550 invalid database"})
	assert.ErrorIs(t, wrapped, ErrInvalidDatabase)
	assert.NotErrorIs(t, wrapped, ErrInvalidStrategy)
	assert.Equal(t, KindInvalidDatabase, KindOf(wrapped))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Kind(0), KindOf(nil))
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
	assert.Equal(t, KindProtocol, KindOf(NewProtocolError("bad", "x")))
}

func TestErrorMessage(t *testing.T) {
	err := UnexpectedStatus(Status{Code: 420, Detail: "server temporarily unavailable"})
	assert.Equal(t, `dict: protocol error: unexpected status 420 (line "420 server temporarily unavailable")`, err.Error())

	err = NewConnectionError("read line", io.EOF)
	assert.Equal(t, "dict: connection error: read line: EOF", err.Error())
}

func TestShouldCloseConnection(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"connection", NewConnectionError("read line", io.EOF), true},
		{"protocol", NewProtocolError("malformed status line", "x"), true},
		{"invalid database", &Error{Kind: KindInvalidDatabase}, false},
		{"invalid strategy", fmt.Errorf("match: %w", &Error{Kind: KindInvalidStrategy}), false},
		{"unknown", errors.New("unknown"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldCloseConnection(tt.err))
		})
	}
}
