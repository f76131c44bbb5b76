package pipeline

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/ukydev/fleet-reports/internal/models"
)

// RouteStub is a route taken from the per-day plan, already joined to its
// vehicle plate and driver name.
type RouteStub struct {
	ID           models.ID
	PlanID       models.ID
	VehicleID    models.ID
	VehiclePlate string
	DriverName   string
}

// FlattenPlan walks the per-vehicle route lists of a day plan and attaches
// the vehicle plate and driver name to every route. A driver nested without
// a name is resolved through drivers.
func FlattenPlan(vehicles []models.PlanVehicle, drivers map[models.ID]string) []RouteStub {
	var stubs []RouteStub
	for _, pv := range vehicles {
		plate := orNA(pv.Name)
		driver := NotAvailable
		if pv.Driver != nil {
			switch {
			case pv.Driver.Name != "":
				driver = pv.Driver.Name
			case !pv.Driver.ID.IsZero():
				driver = ResolveName(drivers, pv.Driver.ID)
			}
		}
		for _, r := range pv.Routes {
			if r.ID.IsZero() {
				continue
			}
			stubs = append(stubs, RouteStub{
				ID:           r.ID,
				PlanID:       r.PlanID,
				VehicleID:    pv.ID,
				VehiclePlate: plate,
				DriverName:   driver,
			})
		}
	}
	return stubs
}

// EnrichRoutes joins every stub to its route detail by id. Stubs without a
// detail keep their sentinels.
func EnrichRoutes(stubs []RouteStub, details map[models.ID]models.Route, loc *time.Location) []models.RouteRow {
	rows := make([]models.RouteRow, 0, len(stubs))
	for _, s := range stubs {
		row := models.RouteRow{
			ID:              s.ID,
			PlanID:          s.PlanID,
			VehiclePlate:    s.VehiclePlate,
			DriverName:      s.DriverName,
			Status:          NotAvailable,
			TotalDistanceKm: NotAvailable,
			TotalDuration:   NotAvailable,
			StartTime:       NotAvailable,
			Reference:       NotAvailable,
			Comment:         NotAvailable,
		}
		if d, ok := details[s.ID]; ok {
			row.Status = d.Status.Or(NotAvailable)
			row.TotalVisits = int(d.TotalVisits.Or(0))
			row.TotalDistanceKm = FormatKm(d.TotalDistance)
			row.TotalDuration = d.TotalDuration.Or(NotAvailable)
			row.StartTime = FormatClock(d.StartTime, loc)
			row.Reference = d.Reference.Or(NotAvailable)
			row.Comment = d.Comment.Or(NotAvailable)
		}
		rows = append(rows, row)
	}
	return rows
}

var thousand = decimal.NewFromInt(1000)

// MetersToKm converts meters to kilometers rounded to two decimals.
func MetersToKm(meters float64) decimal.Decimal {
	return decimal.NewFromFloat(meters).Div(thousand).Round(2)
}

// FormatKm renders a distance in meters as kilometers with two decimals,
// or "N/A" when the distance is missing.
func FormatKm(meters models.Float) string {
	if !meters.Valid {
		return NotAvailable
	}
	return MetersToKm(meters.Value).StringFixed(2)
}

// Round2 rounds half away from zero to two decimals. Rounding goes through
// the shortest decimal form of v so 12.345 becomes 12.35.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
