package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		poolSize int
		want     int32
	}{
		{"configured size", 25, 25},
		{"zero falls back to default", 0, defaultPoolSize},
		{"negative falls back to default", -3, defaultPoolSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := poolConfig("host=localhost dbname=priceboard user=pb", tt.poolSize)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.MaxConns)
		})
	}
}

func TestPoolConfig_BadConnString(t *testing.T) {
	t.Parallel()

	_, err := poolConfig("host=localhost port=notaport", 5)
	assert.Error(t, err)
}
