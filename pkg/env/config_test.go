package env

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 2, cfg.Precision)
	assert.False(t, cfg.FailFast)
	assert.Empty(t, cfg.MonitorAddr)
}

func TestLoadConfig(t *testing.T) {
	l := NewPrefixedLoader("EXPECT_TEST_CFG_")
	l.file["EXPECT_TEST_CFG_LOG_LEVEL"] = "debug"
	l.file["EXPECT_TEST_CFG_LOG_PATH"] = "/tmp/logs"
	l.file["EXPECT_TEST_CFG_VERBOSE"] = "true"
	l.file["EXPECT_TEST_CFG_MONITOR_ADDR"] = "127.0.0.1:9100"
	l.file["EXPECT_TEST_CFG_FAIL_FAST"] = "1"
	l.file["EXPECT_TEST_CFG_PRECISION"] = "4"

	cfg, err := LoadConfig(l)
	require.NoError(t, err)
	assert.Equal(t, Config{
		LogLevel:    "debug",
		LogPath:     "/tmp/logs",
		Verbose:     true,
		MonitorAddr: "127.0.0.1:9100",
		FailFast:    true,
		Precision:   4,
	}, cfg)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(NewPrefixedLoader("EXPECT_TEST_UNSET_"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_Malformed(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bool", "EXPECT_TEST_BAD_VERBOSE", "maybe"},
		{"int", "EXPECT_TEST_BAD_PRECISION", "four"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewPrefixedLoader("EXPECT_TEST_BAD_")
			l.file[tt.key] = tt.val

			_, err := LoadConfig(l)
			assert.ErrorContains(t, err, "parse config")
		})
	}
}

func TestLoadConfig_ProcessEnvWins(t *testing.T) {
	l := NewPrefixedLoader("EXPECT_TEST_OS_")
	l.file["EXPECT_TEST_OS_PRECISION"] = "3"
	t.Setenv("EXPECT_TEST_OS_PRECISION", "5")

	cfg, err := LoadConfig(l)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Precision)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeEnv(t, "EXPECT_PRECISION=3\nEXPECT_FAIL_FAST=true\n")

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Precision)
	assert.True(t, cfg.FailFast)
}

func TestLoadConfigFile_Missing(t *testing.T) {
	cfg, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Precision)
}

func TestLoadConfigFile_Unreadable(t *testing.T) {
	_, err := LoadConfigFile(t.TempDir())
	assert.Error(t, err)
}
