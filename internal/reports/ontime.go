package reports

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-reports/internal/charts"
	"github.com/ukydev/fleet-reports/internal/models"
	"github.com/ukydev/fleet-reports/internal/pipeline"
)

// Summary counts visits per classification.
type Summary struct {
	Total         int     `json:"total"`
	OnTime        int     `json:"on_time"`
	Late          int     `json:"late"`
	Pending       int     `json:"pending"`
	Unknown       int     `json:"unknown"`
	OnTimePercent float64 `json:"on_time_percent"`
}

// Summarize counts records per classification.
func Summarize(records []models.DerivedVisitRecord) Summary {
	sum := Summary{Total: len(records)}
	for _, r := range records {
		switch r.Classification {
		case models.OnTime:
			sum.OnTime++
		case models.Late:
			sum.Late++
		case models.Pending:
			sum.Pending++
		default:
			sum.Unknown++
		}
	}
	if sum.Total > 0 {
		sum.OnTimePercent = pipeline.Round2(float64(sum.OnTime) / float64(sum.Total) * 100)
	}
	return sum
}

// OnTimeReport is the on-time delivery page.
type OnTimeReport struct {
	Summary Summary                     `json:"summary"`
	Status  []charts.Slice              `json:"status"`
	Drivers []charts.DriverRow          `json:"drivers"`
	Visits  []models.DerivedVisitRecord `json:"visits"`
}

// OnTime classifies every visit and projects the status and per-driver
// series. The summary is published once the page is ready.
func (s *Service) OnTime(ctx context.Context) Result[*OnTimeReport] {
	res := build(ctx, ReportOnTime, "Failed to load on-time delivery data.", func(ctx context.Context) (*OnTimeReport, error) {
		records, err := s.derivedVisits(ctx)
		if err != nil {
			return nil, err
		}
		return &OnTimeReport{
			Summary: Summarize(records),
			Status:  charts.StatusSeries(records),
			Drivers: charts.DriverSeries(records),
			Visits:  records,
		}, nil
	})
	if res.Page.State == StateReady {
		if err := s.publisher.Publish(ctx, ReportOnTime, res.Data.Summary); err != nil {
			log.WithError(err).WithField("report", ReportOnTime).Warn("Failed to publish report summary")
		}
	}
	return res
}
