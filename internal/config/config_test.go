package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8111", cfg.Port)
	assert.Equal(t, language.MustParse("tr-TR"), cfg.SpeechLocale)
	assert.Equal(t, 60*time.Second, cfg.GeminiTimeout)
	assert.Equal(t, 5, cfg.MaxRecognizerRestarts)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SPEECH_LOCALE", "en-US")
	t.Setenv("GEMINI_TIMEOUT", "30s")
	t.Setenv("MAX_RECOGNIZER_RESTARTS", "2")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, language.MustParse("en-US"), cfg.SpeechLocale)
	assert.Equal(t, 30*time.Second, cfg.GeminiTimeout)
	assert.Equal(t, 2, cfg.MaxRecognizerRestarts)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoad_InvalidLocale(t *testing.T) {
	t.Setenv("SPEECH_LOCALE", "!!")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MalformedNumbersFallBack(t *testing.T) {
	t.Setenv("MAX_RECOGNIZER_RESTARTS", "many")
	t.Setenv("GEMINI_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MaxRecognizerRestarts)
	assert.Equal(t, 60*time.Second, cfg.GeminiTimeout)
}
