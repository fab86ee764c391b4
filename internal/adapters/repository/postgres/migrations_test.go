package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFile(t *testing.T) {
	tests := map[string]string{
		"init.up":          "000001_init.up.sql",
		"000001_init.down":   "000001_init.down.sql",
		"000001_init.up":   "000001_init.up.sql",
	}
	for name, want := range tests {
		got, err := MigrationFile(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got)
	}

	_, err := MigrationFile("init.sideways")
	assert.ErrorIs(t, err, ErrMigrationNotFound)

	_, err = MigrationFile("init")
	assert.ErrorIs(t, err, ErrMigrationNotFound, "direction is required")
}
