package reports

import (
	"strings"

	"github.com/ukydev/fleet-reports/internal/models"
)

// StatusAll disables the status filter.
const StatusAll = "all"

// Searchable is a row that can be searched and filtered.
type Searchable interface {
	SearchFields() []string
	FilterStatus() string
}

// Filter keeps rows matching query and status. query is a case-insensitive
// substring matched against the row's search fields; status must match
// exactly unless it is empty or "all".
func Filter[T Searchable](rows []T, query, status string) []T {
	query = strings.ToLower(strings.TrimSpace(query))
	status = strings.TrimSpace(status)
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if status != "" && status != StatusAll && r.FilterStatus() != status {
			continue
		}
		if query != "" && !matches(r.SearchFields(), query) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matches(fields []string, query string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

// VisitRow adapts a derived visit for filtering by title, address, driver
// and plate, with the classification as status.
type VisitRow struct{ models.DerivedVisitRecord }

func (r VisitRow) SearchFields() []string {
	return []string{r.Title, r.Address, r.DriverName, r.VehiclePlate}
}

func (r VisitRow) FilterStatus() string { return string(r.Classification) }

// PODRow filters proof-of-delivery records by client and address.
type PODRow struct{ models.PODRecord }

func (r PODRow) SearchFields() []string { return []string{r.ClientName, r.Address} }
func (r PODRow) FilterStatus() string   { return r.Status }

// ClientRow filters client visits by client, driver and address.
type ClientRow struct{ models.ClientVisitRow }

func (r ClientRow) SearchFields() []string {
	return []string{r.ClientName, r.DriverName, r.Address}
}

func (r ClientRow) FilterStatus() string { return r.Status }

func wrap[T any, W any](rows []T, fn func(T) W) []W {
	out := make([]W, 0, len(rows))
	for _, r := range rows {
		out = append(out, fn(r))
	}
	return out
}

// FilterVisits filters derived visits by search text and classification.
func FilterVisits(rows []models.DerivedVisitRecord, query, status string) []models.DerivedVisitRecord {
	kept := Filter(wrap(rows, func(r models.DerivedVisitRecord) VisitRow { return VisitRow{r} }), query, status)
	return wrap(kept, func(r VisitRow) models.DerivedVisitRecord { return r.DerivedVisitRecord })
}

// FilterPOD filters proof-of-delivery records by search text.
func FilterPOD(rows []models.PODRecord, query string) []models.PODRecord {
	kept := Filter(wrap(rows, func(r models.PODRecord) PODRow { return PODRow{r} }), query, "")
	return wrap(kept, func(r PODRow) models.PODRecord { return r.PODRecord })
}

// FilterClientVisits filters client visits by search text.
func FilterClientVisits(rows []models.ClientVisitRow, query string) []models.ClientVisitRow {
	kept := Filter(wrap(rows, func(r models.ClientVisitRow) ClientRow { return ClientRow{r} }), query, "")
	return wrap(kept, func(r ClientRow) models.ClientVisitRow { return r.ClientVisitRow })
}
