package pipeline

import (
	"strconv"
	"strings"
	"time"

	"github.com/ukydev/fleet-reports/internal/models"
)

// DeriveVisit classifies a visit and resolves its driver and vehicle.
func DeriveVisit(v models.Visit, refs References, loc *time.Location) models.DerivedVisitRecord {
	rec := models.DerivedVisitRecord{
		ID:             v.ID,
		Title:          visitTitle(v),
		Address:        v.Address.Or(NotAvailable),
		Status:         orNA(v.Status),
		Classification: Classify(v, loc),
		DriverID:       v.Driver,
		DriverName:     ResolveName(refs.Drivers, v.Driver),
		VehicleID:      v.Vehicle,
		VehiclePlate:   ResolveName(refs.Vehicles, v.Vehicle),
		Load:           v.Load.Or(0),
		Load3:          v.Load3.Or(0),
		Latitude:       formatCoord(v.Latitude),
		Longitude:      formatCoord(v.Longitude),
		PlannedDate:    orNA(v.PlannedDate),
		PlannedWindow:  orNA(v.WindowStart) + " - " + orNA(v.WindowEnd),
		CheckoutTime:   NotAvailable,
		Raw:            v.Raw,
	}
	if pos, ok := models.LocationOf(v.Latitude, v.Longitude); ok {
		rec.MapsURL = pos.MapsURL()
	}
	if strings.TrimSpace(v.CheckoutTime) != "" {
		rec.CheckoutTime = FormatClock(v.CheckoutTime, loc)
	}
	return rec
}

// DeriveVisits derives every visit, keeping input order.
func DeriveVisits(visits []models.Visit, refs References, loc *time.Location) []models.DerivedVisitRecord {
	out := make([]models.DerivedVisitRecord, 0, len(visits))
	for _, v := range visits {
		out = append(out, DeriveVisit(v, refs, loc))
	}
	return out
}

func visitTitle(v models.Visit) string {
	if strings.TrimSpace(string(v.Title)) != "" {
		return string(v.Title)
	}
	return "Visit " + string(v.ID)
}

func formatCoord(f models.Float) string {
	if !f.Valid || f.Value == 0 {
		return NotAvailable
	}
	return strconv.FormatFloat(f.Value, 'f', -1, 64)
}
