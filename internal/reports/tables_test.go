package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-reports/internal/charts"
	"github.com/ukydev/fleet-reports/internal/export"
	"github.com/ukydev/fleet-reports/internal/models"
)

func TestTables_RowsMatchHeaders(t *testing.T) {
	tables := []export.Table{
		(&OnTimeReport{Visits: []models.DerivedVisitRecord{{ID: "1", Classification: models.Late}}}).Table(),
		(&DailyRoutesReport{Date: "2024-03-01", Routes: []models.RouteRow{{ID: "r1"}}}).Table(),
		(&PODReport{Records: []models.PODRecord{{VisitID: "1"}}}).Table(),
		(&ClientVisitsReport{Visits: []models.ClientVisitRow{{VisitID: "1"}}}).Table(),
		(&FinancialReport{Invoices: []models.InvoiceRow{{ID: "1"}}}).Table(),
		(&VehicleReport{Vehicles: []VehicleRow{{ID: "10"}}}).Table(),
		(&FleetReport{Drivers: []DriverInfo{{ID: "7", Admin: true}}}).Table(),
	}
	for _, tbl := range tables {
		t.Run(tbl.Sheet, func(t *testing.T) {
			require.Len(t, tbl.Rows, 1)
			assert.Len(t, tbl.Rows[0], len(tbl.Headers))
		})
	}
}

func TestVehicleReportTable_JoinsLoads(t *testing.T) {
	r := &VehicleReport{
		Vehicles: []VehicleRow{{ID: "10", Plate: "AB-1234"}, {ID: "11", Plate: "CD-5678"}},
		Capacity: []charts.CapacityRow{{VehicleID: "10", Load: 25.5, Load3: 1}},
	}
	tbl := r.Table()
	assert.Equal(t, 25.5, tbl.Rows[0][5])
	assert.Equal(t, 0.0, tbl.Rows[1][5])
}
