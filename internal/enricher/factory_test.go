package enricher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvProvider, "")
	t.Setenv(EnvGeminiAPIKey, "")
	t.Setenv(EnvOpenAIAPIKey, "")
}

func TestNewFromEnv_NoopFallback(t *testing.T) {
	clearEnv(t)

	enr, err := NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, ProviderNoop, enr.Provider())
}

func TestNewFromEnv_ExplicitProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvProvider, "gemini")
	t.Setenv(EnvGeminiAPIKey, "test-key")

	enr, err := NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, enr.Provider())
	assert.Equal(t, DefaultGeminiModel, enr.Model())
}

func TestNewFromEnv_ExplicitProviderMissingKey(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvProvider, "openai")

	_, err := NewFromEnv()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewFromEnv_AutoDetectByKey(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvOpenAIAPIKey, "test-key")

	enr, err := NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, enr.Provider())
}

func TestNewFromEnv_UnknownProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvProvider, "mystery")

	_, err := NewFromEnv()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}

func TestNew_ExplicitConfig(t *testing.T) {
	enr, err := New(Config{Provider: "gemini", APIKey: "k", CacheSize: 100})
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, enr.Provider())

	enr, err = New(Config{})
	require.NoError(t, err)
	assert.Equal(t, ProviderNoop, enr.Provider())

	_, err = New(Config{Provider: "nonsense"})
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}

func TestDetectProvider(t *testing.T) {
	clearEnv(t)
	assert.Equal(t, ProviderNoop, DetectProvider())

	t.Setenv(EnvGeminiAPIKey, "k")
	assert.Equal(t, ProviderGemini, DetectProvider())

	t.Setenv(EnvProvider, "OPENAI")
	assert.Equal(t, ProviderOpenAI, DetectProvider())
}
