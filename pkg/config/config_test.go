package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "09:00", cfg.Timetable.DayStart)
	assert.Equal(t, "17:00", cfg.Timetable.DayEnd)
	assert.Equal(t, time.Hour, cfg.Timetable.RunTTL)
	assert.Equal(t, 5*time.Minute, cfg.Statistics.CacheTTL)
	assert.False(t, cfg.Timetable.AsyncEnabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("TIMETABLE_DAY_START", "08:00")
	t.Setenv("ENABLE_ASYNC_GENERATION", "true")
	t.Setenv("TIMETABLE_RUN_TTL", "bogus")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "08:00", cfg.Timetable.DayStart)
	assert.True(t, cfg.Timetable.AsyncEnabled)
	assert.Equal(t, time.Hour, cfg.Timetable.RunTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
