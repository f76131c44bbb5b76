package reports

import (
	"context"

	"github.com/ukydev/fleet-reports/internal/models"
	"github.com/ukydev/fleet-reports/internal/pipeline"
)

// PODReport is the proof-of-delivery page.
type PODReport struct {
	Records []models.PODRecord `json:"records"`
}

// POD lists the visits that carry a picture or a signature.
func (s *Service) POD(ctx context.Context) Result[*PODReport] {
	return build(ctx, ReportPOD, "Failed to load Proof of Delivery data.", func(ctx context.Context) (*PODReport, error) {
		visits, err := s.visits(ctx)
		if err != nil {
			return nil, err
		}
		return &PODReport{Records: pipeline.ProofOfDelivery(visits)}, nil
	})
}
