package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serverEnv struct {
	HTTPPort  int      `env:"LOADER_TEST_HTTP_PORT" envDefault:"8080"`
	LogLevel  string   `env:"LOADER_TEST_LOG_LEVEL" envDefault:"info"`
	Brokers   []string `env:"LOADER_TEST_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	DebugMode bool     `env:"LOADER_TEST_DEBUG" envDefault:"false"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg serverEnv
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Brokers)
	assert.False(t, cfg.DebugMode)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LOADER_TEST_HTTP_PORT", "9090")
	t.Setenv("LOADER_TEST_LOG_LEVEL", "debug")
	t.Setenv("LOADER_TEST_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("LOADER_TEST_DEBUG", "true")

	var cfg serverEnv
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Brokers)
	assert.True(t, cfg.DebugMode)
}

type secretEnv struct {
	JWTSecret string `env:"LOADER_TEST_JWT_SECRET,required"`
}

func TestLoad_RequiredMissing(t *testing.T) {
	var cfg secretEnv
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_RequiredPresent(t *testing.T) {
	t.Setenv("LOADER_TEST_JWT_SECRET", "0123456789abcdef0123456789abcdef")

	var cfg secretEnv
	require.NoError(t, Load(&cfg))
	assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.JWTSecret)
}

func TestLoad_BadValueType(t *testing.T) {
	t.Setenv("LOADER_TEST_HTTP_PORT", "not-a-number")

	var cfg serverEnv
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
