package jobs

import (
	"testing"
	"time"

	"MediLink/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestExpiryFilter(t *testing.T) {
	start := time.Date(2026, 8, 22, 0, 0, 0, 0, time.UTC)
	filter := ExpiryFilter(start)

	assert.Equal(t, models.AppointmentBooked, filter["status"])
	dateFilter, ok := filter["date"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, start, dateFilter["$lt"])
}

func TestStartOfToday(t *testing.T) {
	start := StartOfToday()
	now := time.Now()

	assert.Equal(t, time.UTC, start.Location())
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 0, start.Minute())
	assert.Equal(t, 0, start.Second())
	assert.False(t, start.After(now))
	assert.True(t, now.Sub(start) < 24*time.Hour)
}

// Appointments carry dates parsed from "2006-01-02" strings, which land on
// UTC midnight. A date stored on the sweep's own day must sit exactly on the
// boundary, whatever zone the host runs in.
func TestExpiryBoundaryAgainstStoredDates(t *testing.T) {
	start := StartOfToday()
	stored, err := time.Parse("2006-01-02", start.Format("2006-01-02"))
	require.NoError(t, err)

	assert.True(t, stored.Equal(start))
	assert.False(t, stored.Before(start), "appointments booked for today must stay booked")
	assert.True(t, stored.AddDate(0, 0, -1).Before(start), "yesterday's appointments must expire")
}
