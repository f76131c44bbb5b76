package reports

import (
	"context"

	"github.com/ukydev/fleet-reports/internal/charts"
	"github.com/ukydev/fleet-reports/internal/models"
	"github.com/ukydev/fleet-reports/internal/pipeline"
)

// FinancialReport is the invoice page, read from the datamart host.
type FinancialReport struct {
	Invoices []models.InvoiceRow  `json:"invoices"`
	Series   []charts.AmountPoint `json:"series"`
	Total    string               `json:"total"`
}

// Financial lists invoices by date with their running chart.
func (s *Service) Financial(ctx context.Context) Result[*FinancialReport] {
	return build(ctx, ReportFinancial, "Failed to load financial data.", func(ctx context.Context) (*FinancialReport, error) {
		invoices, err := fetch[models.Invoice](ctx, s.datamart, InvoicesPath)
		if err != nil {
			return nil, err
		}
		return &FinancialReport{
			Invoices: pipeline.InvoiceRows(invoices),
			Series:   charts.AmountSeries(invoices),
			Total:    pipeline.InvoiceTotal(invoices).StringFixed(2),
		}, nil
	})
}
