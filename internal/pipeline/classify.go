// Package pipeline turns raw vendor records into display-ready report rows:
// it classifies visits, resolves driver and vehicle names through the
// reference maps and joins routes to their vehicles and details.
//
// Every function here is pure. Missing source fields become sentinels
// ("N/A", "ID: <id>", 0) and never reach callers as empty values.
package pipeline

import (
	"errors"
	"strings"
	"time"

	"github.com/ukydev/fleet-reports/internal/models"
)

var errNoTime = errors.New("no time value")

// Classify derives the on-time category of a visit.
//
// A completed visit with a checkout time is on time when it checked out at
// or before the end of its window on the planned date, late otherwise. When
// the window end, the planned date or the checkout itself cannot be read the
// visit is counted late. Pending visits are pending whatever else they
// carry; every other status, including completed without checkout, is
// unknown.
func Classify(v models.Visit, loc *time.Location) models.Classification {
	switch {
	case v.Status == models.VisitStatusCompleted && strings.TrimSpace(v.CheckoutTime) != "":
		checkout, err := ParseTimestamp(v.CheckoutTime, loc)
		if err != nil {
			return models.Late
		}
		end, err := WindowEnd(v.PlannedDate, v.WindowEnd, loc)
		if err != nil {
			return models.Late
		}
		if checkout.After(end) {
			return models.Late
		}
		return models.OnTime
	case v.Status == models.VisitStatusPending:
		return models.Pending
	default:
		return models.Unknown
	}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseTimestamp reads a vendor timestamp. Values without a zone are taken
// in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errNoTime
	}
	if loc == nil {
		loc = time.Local
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

var clockLayouts = []string{"15:04:05", "15:04"}

// WindowEnd combines a planned date (YYYY-MM-DD) and a window end
// (HH:MM:SS or HH:MM) into an instant in loc.
func WindowEnd(plannedDate, windowEnd string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	day, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(plannedDate), loc)
	if err != nil {
		return time.Time{}, err
	}
	clock, err := parseClock(windowEnd)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), clock.Second(), 0, loc), nil
}

func parseClock(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errNoTime
	}
	var lastErr error
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// FormatClock renders a timestamp or a bare clock value as local HH:MM,
// or "N/A" when it cannot be read.
func FormatClock(s string, loc *time.Location) string {
	if t, err := ParseTimestamp(s, loc); err == nil {
		if loc == nil {
			loc = time.Local
		}
		return t.In(loc).Format("15:04")
	}
	if t, err := parseClock(s); err == nil {
		return t.Format("15:04")
	}
	return NotAvailable
}
