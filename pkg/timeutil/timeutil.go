// Package timeutil provides calendar-day utilities for streak and daily
// challenge bookkeeping. All calculations run in a single configurable
// zone so "today" means the same thing across the whole service.
// No external dependencies - uses only standard library.
package timeutil

import (
	"sync/atomic"
	"time"
)

// zone holds the *time.Location all calendar math is performed in.
var zone atomic.Pointer[time.Location]

func init() {
	zone.Store(time.UTC)
}

// SetZone sets the zone used for calendar-day calculations.
// Called once at startup from configuration; nil is ignored.
func SetZone(loc *time.Location) {
	if loc != nil {
		zone.Store(loc)
	}
}

// Zone returns the configured calendar zone.
func Zone() *time.Location {
	return zone.Load()
}

// Now returns the current time in the configured zone.
func Now() time.Time {
	return time.Now().In(Zone())
}

// StartOfDay returns the start of the day (00:00:00) in the configured zone.
func StartOfDay(t time.Time) time.Time {
	local := t.In(Zone())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, Zone())
}

// EndOfDay returns the end of the day (23:59:59.999999999) in the configured zone.
func EndOfDay(t time.Time) time.Time {
	local := t.In(Zone())
	return time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, 999999999, Zone())
}

// IsSameDay reports whether two times fall on the same calendar day.
func IsSameDay(t1, t2 time.Time) bool {
	return StartOfDay(t1).Equal(StartOfDay(t2))
}

// IsToday reports whether t falls on the current calendar day.
func IsToday(t time.Time) bool {
	return IsSameDay(t, Now())
}

// IsYesterday reports whether t falls on the calendar day before today.
func IsYesterday(t time.Time) bool {
	return IsSameDay(t, Now().AddDate(0, 0, -1))
}

// DaysBetween returns the number of calendar-day boundaries crossed
// between t1 and t2. Same day = 0, consecutive days = 1.
// Day starts are re-anchored in UTC before subtracting so that DST
// transitions (23h or 25h local days) still count as one calendar day.
func DaysBetween(t1, t2 time.Time) int {
	d1 := StartOfDay(t1)
	d2 := StartOfDay(t2)
	u1 := time.Date(d1.Year(), d1.Month(), d1.Day(), 0, 0, 0, 0, time.UTC)
	u2 := time.Date(d2.Year(), d2.Month(), d2.Day(), 0, 0, 0, 0, time.UTC)
	return int(u2.Sub(u1).Hours() / 24)
}

// IsConsecutiveDay reports whether t2 falls on the calendar day
// immediately after t1.
func IsConsecutiveDay(t1, t2 time.Time) bool {
	return DaysBetween(t1, t2) == 1
}
