package reports

import (
	"context"

	"github.com/ukydev/fleet-reports/internal/charts"
	"github.com/ukydev/fleet-reports/internal/models"
	"github.com/ukydev/fleet-reports/internal/pipeline"
	"golang.org/x/sync/errgroup"
)

// ClientVisitsReport is the client visit history page.
type ClientVisitsReport struct {
	Visits    []models.ClientVisitRow `json:"visits"`
	PerClient []charts.Bar            `json:"per_client"`
}

// ClientHistory associates every visit with its client. Clients and visits
// are fetched concurrently and either failure fails the page.
func (s *Service) ClientHistory(ctx context.Context) Result[*ClientVisitsReport] {
	return build(ctx, ReportClientVisits, "Failed to load client visit history.", func(ctx context.Context) (*ClientVisitsReport, error) {
		refs, err := s.references(ctx)
		if err != nil {
			return nil, err
		}

		var (
			clients []models.Client
			visits  []models.Visit
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			clients, err = fetch[models.Client](gctx, s.vendor, ClientsPath)
			return err
		})
		g.Go(func() error {
			var err error
			visits, err = fetch[models.Visit](gctx, s.vendor, VisitsPath)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		rows := pipeline.ClientVisits(visits, pipeline.NewClientDirectory(clients), refs.Drivers)
		return &ClientVisitsReport{
			Visits:    rows,
			PerClient: charts.CountBy(rows, func(r models.ClientVisitRow) string { return r.ClientName }),
		}, nil
	})
}
