package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-reports/internal/models"
)

func TestCapacitySeries(t *testing.T) {
	vehicles := []models.Vehicle{
		{ID: "10", Name: "AB-1234", Capacity: models.NewFloat(100), Capacity2: models.NewFloat(20)},
		{ID: "11", Name: "CD-5678"},
		{ID: "12"},
	}
	visits := []models.DerivedVisitRecord{
		{VehicleID: "10", Load: 10.25, Load3: 1.5},
		{VehicleID: "10", Load: 5.004, Load3: 0},
		{VehicleID: "99", Load: 50},
		{Load: 7},
	}

	rows := CapacitySeries(vehicles, visits)

	require.Len(t, rows, 3)
	assert.Equal(t, CapacityRow{VehicleID: "10", Plate: "AB-1234", Load: 15.25, Load3: 1.5, Capacity: 100, Capacity2: 20}, rows[0])
	assert.Equal(t, CapacityRow{VehicleID: "11", Plate: "CD-5678"}, rows[1])
	assert.Equal(t, "ID: 12", rows[2].Plate)
}

func TestUtilizationPie(t *testing.T) {
	rows := []CapacityRow{
		{Plate: "A", Load: 30, Capacity: 100},
		{Plate: "B", Load: 20, Capacity: 100},
		{Plate: "C", Load: 0, Capacity: 1000},
	}

	pie := UtilizationPie(rows)

	assert.Equal(t, []Slice{
		{Name: "Used", Value: 25, ShowLabel: true},
		{Name: "Available", Value: 75, ShowLabel: true},
	}, pie)
}

func TestUtilizationPie_Overloaded(t *testing.T) {
	pie := UtilizationPie([]CapacityRow{{Load: 150, Capacity: 100}})

	assert.Equal(t, 100.0, pie[0].Value)
	assert.Equal(t, 0.0, pie[1].Value)
	assert.False(t, pie[1].ShowLabel)
}

func TestUtilizationPie_NoCapacity(t *testing.T) {
	cases := [][]CapacityRow{
		nil,
		{{Load: 0, Capacity: 100}},
		{{Load: 12, Capacity: 0}},
	}
	for _, rows := range cases {
		pie := UtilizationPie(rows)
		require.Len(t, pie, 1)
		assert.Equal(t, NoData, pie[0].Name)
		assert.Equal(t, 100.0, total(pie))
	}
}
