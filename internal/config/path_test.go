package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("SANITARY_TEST_DIR", "/var/lib/sanitary")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"absolute untouched", "/tmp/catalog.db", "/tmp/catalog.db"},
		{"relative untouched", "data/catalog.db", "data/catalog.db"},
		{"bare tilde", "~", home},
		{"tilde prefix", "~/sanitary.db", filepath.Join(home, "sanitary.db")},
		{"env var", "$SANITARY_TEST_DIR/catalog.db", "/var/lib/sanitary/catalog.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}
