package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2025, 3, 10, 17, 45, 30, 123, time.UTC)
	start := StartOfDay(ts)

	assert.Equal(t, 2025, start.Year())
	assert.Equal(t, time.March, start.Month())
	assert.Equal(t, 10, start.Day())
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 0, start.Minute())
}

func TestIsSameDay(t *testing.T) {
	morning := time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)
	nextDay := time.Date(2025, 3, 11, 0, 1, 0, 0, time.UTC)

	assert.True(t, IsSameDay(morning, evening))
	assert.False(t, IsSameDay(evening, nextDay))
}

func TestDaysBetween(t *testing.T) {
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysBetween(base, base.Add(11*time.Hour)))
	assert.Equal(t, 1, DaysBetween(base, base.Add(13*time.Hour)))
	assert.Equal(t, 7, DaysBetween(base, base.AddDate(0, 0, 7)))
	assert.Equal(t, -1, DaysBetween(base, base.AddDate(0, 0, -1)))
}

func TestDaysBetween_AcrossDSTTransitions(t *testing.T) {
	original := Zone()
	defer SetZone(original)

	newYork, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	SetZone(newYork)

	// March 8 2026 is the spring-forward day (23 wall-clock hours).
	before := time.Date(2026, 3, 8, 9, 0, 0, 0, newYork)
	after := time.Date(2026, 3, 9, 9, 0, 0, 0, newYork)
	assert.Equal(t, 1, DaysBetween(before, after))
	assert.True(t, IsConsecutiveDay(before, after))

	// November 1 2026 is the fall-back day (25 wall-clock hours).
	before = time.Date(2026, 11, 1, 9, 0, 0, 0, newYork)
	after = time.Date(2026, 11, 2, 9, 0, 0, 0, newYork)
	assert.Equal(t, 1, DaysBetween(before, after))

	// Same calendar day stays 0 even when it spans the transition.
	morning := time.Date(2026, 3, 8, 1, 0, 0, 0, newYork)
	evening := time.Date(2026, 3, 8, 23, 0, 0, 0, newYork)
	assert.Equal(t, 0, DaysBetween(morning, evening))
}

func TestIsConsecutiveDay(t *testing.T) {
	base := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)

	assert.True(t, IsConsecutiveDay(base, base.Add(time.Hour)))
	assert.False(t, IsConsecutiveDay(base, base.Add(25*time.Hour)))
	assert.False(t, IsConsecutiveDay(base, base))
}

func TestZoneConfiguration(t *testing.T) {
	original := Zone()
	defer SetZone(original)

	almaty, err := time.LoadLocation("Asia/Almaty")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	SetZone(almaty)

	assert.Equal(t, almaty, Zone())

	// 20:00 UTC on March 10 is already March 11 in Almaty (UTC+5).
	utcEvening := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, 11, StartOfDay(utcEvening).Day())
}

func TestSetZone_IgnoresNil(t *testing.T) {
	original := Zone()
	SetZone(nil)
	assert.Equal(t, original, Zone())
}
