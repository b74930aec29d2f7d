package dict

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseIsPseudo(t *testing.T) {
	assert.True(t, Database{Name: AllDatabases}.IsPseudo())
	assert.True(t, Database{Name: FirstMatch}.IsPseudo())
	assert.False(t, Database{Name: "wn", Description: "WordNet"}.IsPseudo())
}

func TestDefinitionText(t *testing.T) {
	tests := []struct {
		name string
		body []string
		want string
	}{
		{"empty", nil, ""},
		{"single line", []string{"a procedure"}, "a procedure"},
		{"keeps blank lines", []string{"test", "", "  n 1: trial"}, "test\n\n  n 1: trial"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Definition{Word: "test", Database: Database{Name: "wn"}, Body: tt.body}
			assert.Equal(t, tt.want, d.Text())
		})
	}
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "wn", Database{Name: "wn", Description: "WordNet"}.String())
	assert.Equal(t, "prefix", Strategy{Name: "prefix", Description: "Match prefixes"}.String())
}
