package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTTL(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"30s", 30 * time.Second},
		{"15m", 15 * time.Minute},
		{"8h", 8 * time.Hour},
		{"7d", 7 * 24 * time.Hour},
		{"1d", 24 * time.Hour},
	}

	for _, tc := range cases {
		got, err := ParseTTL(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseTTL_RejectsMalformedPatterns(t *testing.T) {
	for _, in := range []string{"", "8", "h", "8H", "8 h", "-8h", "8w", "8hh", "eight hours"} {
		_, err := ParseTTL(in)
		assert.Error(t, err, in)
	}
}

func TestValidateRequiresSecrets(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	err := cfg.validate()
	require.Error(t, err)

	cfg.SecretKey.Access = "a"
	cfg.SecretKey.Refresh = "r"
	require.NoError(t, cfg.validate())
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, "8h", cfg.Auth.AccessTTL)
	assert.Equal(t, "7d", cfg.Auth.RefreshTTL)
	assert.Equal(t, "data.json", cfg.Export.Filename)
	assert.NotEmpty(t, cfg.Export.CandidateDirs)
	assert.NotEmpty(t, cfg.Export.FallbackDir)
}
