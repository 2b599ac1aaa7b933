package app

import (
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-timetable-api/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT:        config.JWTConfig{Secret: "secret", Expiration: time.Hour},
		Timetable:  config.TimetableConfig{DayStart: "09:00", DayEnd: "17:00", RunTTL: time.Hour},
		Statistics: config.StatisticsConfig{CacheTTL: time.Minute},
	}
}

func newDB(t *testing.T) *sqlx.DB {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock")
}

func TestWireSynchronousOnly(t *testing.T) {
	a, err := Wire(testConfig(), nil, newDB(t), nil)
	require.NoError(t, err)

	assert.NotNil(t, a.Timetable)
	assert.NotNil(t, a.Statistics)
	assert.NotNil(t, a.Views)
	assert.Nil(t, a.Runs)
}

func TestWireAsyncGeneration(t *testing.T) {
	cfg := testConfig()
	cfg.Timetable.AsyncEnabled = true

	a, err := Wire(cfg, nil, newDB(t), nil)
	require.NoError(t, err)
	require.NotNil(t, a.Runs)
}

func TestWireRejectsBadDayWindow(t *testing.T) {
	cfg := testConfig()
	cfg.Timetable.DayEnd = "5pm"

	_, err := Wire(cfg, nil, newDB(t), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TIMETABLE_DAY_END")
}
