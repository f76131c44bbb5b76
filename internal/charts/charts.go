// Package charts reduces report rows into the series the dashboard plots.
package charts

import (
	"strconv"

	"github.com/ukydev/fleet-reports/internal/models"
	"github.com/ukydev/fleet-reports/internal/pipeline"
)

// NoData labels the single slice emitted when a ratio has nothing to divide by.
const NoData = "No data"

// Slice is one category of a pie or bar chart.
type Slice struct {
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	ShowLabel bool    `json:"show_label"`
}

// Bar is a named count.
type Bar struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// StatusSeries counts records per classification. On time, late and pending
// are always present so legends stay stable; unknown only when it occurs.
// Zero slices are emitted with their label hidden.
func StatusSeries(records []models.DerivedVisitRecord) []Slice {
	counts := make(map[models.Classification]int, len(models.Classifications))
	for _, r := range records {
		counts[r.Classification]++
	}
	series := make([]Slice, 0, len(models.Classifications))
	for _, c := range models.Classifications {
		n := counts[c]
		if c == models.Unknown && n == 0 {
			continue
		}
		series = append(series, Slice{Name: c.Label(), Value: float64(n), ShowLabel: n > 0})
	}
	return series
}

// DriverRow holds the per-classification counters of one driver.
type DriverRow struct {
	Driver  string `json:"driver"`
	OnTime  int    `json:"on_time"`
	Late    int    `json:"late"`
	Pending int    `json:"pending"`
	Unknown int    `json:"unknown"`
}

// Total is the number of visits counted for the driver.
func (r DriverRow) Total() int {
	return r.OnTime + r.Late + r.Pending + r.Unknown
}

func (r *DriverRow) add(c models.Classification) {
	switch c {
	case models.OnTime:
		r.OnTime++
	case models.Late:
		r.Late++
	case models.Pending:
		r.Pending++
	default:
		r.Unknown++
	}
}

// DriverSeries builds one stacked row per resolved driver, labelled with the
// short driver name, in the order drivers first appear. Visits whose driver
// did not resolve are left out.
func DriverSeries(records []models.DerivedVisitRecord) []DriverRow {
	index := make(map[string]int)
	var rows []DriverRow
	for _, r := range records {
		if !pipeline.IsResolved(r.DriverName) {
			continue
		}
		name := pipeline.ShortDriverName(r.DriverName)
		i, ok := index[name]
		if !ok {
			i = len(rows)
			index[name] = i
			rows = append(rows, DriverRow{Driver: name})
		}
		rows[i].add(r.Classification)
	}
	return rows
}

// CountBy counts items per key in first-seen order.
func CountBy[T any](items []T, key func(T) string) []Bar {
	index := make(map[string]int)
	bars := make([]Bar, 0)
	for _, it := range items {
		k := key(it)
		i, ok := index[k]
		if !ok {
			i = len(bars)
			index[k] = i
			bars = append(bars, Bar{Name: k})
		}
		bars[i].Count++
	}
	return bars
}

// RouteBar compares the visit count and distance of one route.
type RouteBar struct {
	Plate      string  `json:"plate"`
	Visits     int     `json:"visits"`
	DistanceKm float64 `json:"distance_km"`
}

// RouteSeries plots visits against kilometers per route. Routes without a
// distance plot at zero.
func RouteSeries(rows []models.RouteRow) []RouteBar {
	bars := make([]RouteBar, 0, len(rows))
	for _, r := range rows {
		km, err := strconv.ParseFloat(r.TotalDistanceKm, 64)
		if err != nil {
			km = 0
		}
		bars = append(bars, RouteBar{Plate: r.VehiclePlate, Visits: r.TotalVisits, DistanceKm: km})
	}
	return bars
}

// AmountPoint is an invoice total on a date.
type AmountPoint struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// AmountSeries plots invoice totals over time, oldest first.
func AmountSeries(invoices []models.Invoice) []AmountPoint {
	sorted := pipeline.SortInvoices(invoices)
	points := make([]AmountPoint, 0, len(sorted))
	for _, inv := range sorted {
		points = append(points, AmountPoint{
			Date:   inv.Date,
			Amount: inv.Amount().Round(2).InexactFloat64(),
		})
	}
	return points
}
