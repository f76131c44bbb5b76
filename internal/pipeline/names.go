package pipeline

import (
	"strings"

	"github.com/ukydev/fleet-reports/internal/models"
)

// Sentinels substituted when real data is unavailable.
const (
	NotAvailable     = "N/A"
	UnresolvedPrefix = "ID: "
)

// References are the id to display name lookups a report resolves against.
type References struct {
	Drivers  map[models.ID]string
	Vehicles map[models.ID]string
}

// ResolveName returns the mapped name for id verbatim, "ID: <id>" when the
// id is not in the map, or "N/A" when there is no id at all.
func ResolveName(names map[models.ID]string, id models.ID) string {
	if id.IsZero() {
		return NotAvailable
	}
	if name, ok := names[id]; ok {
		return name
	}
	return UnresolvedPrefix + string(id)
}

// IsResolved reports whether name came from a reference map rather than
// from a sentinel.
func IsResolved(name string) bool {
	name = strings.TrimSpace(name)
	return name != "" && name != NotAvailable && !strings.HasPrefix(name, UnresolvedPrefix)
}

// ShortDriverName shortens "<LASTNAMES> - <FIRSTNAMES>" to
// "<first first-name> <first last-name>" for chart labels. Names with fewer
// than three words, or without the separator, are returned unchanged.
func ShortDriverName(name string) string {
	last, first, ok := strings.Cut(name, " - ")
	if !ok {
		return name
	}
	lastNames := strings.Fields(last)
	firstNames := strings.Fields(first)
	if len(lastNames) == 0 || len(firstNames) == 0 || len(lastNames)+len(firstNames) < 3 {
		return name
	}
	return firstNames[0] + " " + lastNames[0]
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}
