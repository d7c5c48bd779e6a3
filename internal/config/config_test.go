package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("PENDING_EXPIRY_HOURS", "")
	t.Setenv("SALON_TIMEZONE", "")

	cfg := Load()
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 0, cfg.PendingExpiryHours)
	assert.Equal(t, "America/Mexico_City", cfg.Timezone)
	assert.Equal(t, "@every 15m", cfg.ExpirySweepSpec)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("PENDING_EXPIRY_HOURS", "24")
	t.Setenv("BOOKING_RATE_PER_SEC", "0.5")
	t.Setenv("BOOKING_RATE_BURST", "nope")

	cfg := Load()
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 24, cfg.PendingExpiryHours)
	assert.Equal(t, 0.5, cfg.BookingRatePerSec)
	assert.Equal(t, 5, cfg.BookingRateBurst)
}

func TestParseSchedule_Slots(t *testing.T) {
	s, err := ParseSchedule([]byte("slots:\n  - \"10:00\"\n  - \"09:00\"\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00"}, s.Slots())
}

func TestParseSchedule_Generator(t *testing.T) {
	raw := []byte(`
open: "09:00"
close: "18:00"
lunch_start: "13:00"
lunch_end: "14:00"
step_minutes: 30
`)
	s, err := ParseSchedule(raw)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSchedule().Slots(), s.Slots())
}

func TestParseSchedule_Invalid(t *testing.T) {
	_, err := ParseSchedule([]byte("slots: [\"99:99\"]"))
	assert.ErrorIs(t, err, domain.ErrInvalidSchedule)
}

func TestLoadSchedule(t *testing.T) {
	s, err := LoadSchedule("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSchedule().Slots(), s.Slots())

	path := filepath.Join(t.TempDir(), "schedule.yaml")
	require.NoError(t, os.WriteFile(path, []byte("slots: [\"11:00\"]"), 0o600))

	s, err = LoadSchedule(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"11:00"}, s.Slots())

	_, err = LoadSchedule(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
