package pipeline

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ukydev/fleet-reports/internal/models"
)

// SortInvoices orders invoices by date, oldest first. Invoices with an
// unreadable date go last, in their original order.
func SortInvoices(invoices []models.Invoice) []models.Invoice {
	out := append([]models.Invoice(nil), invoices...)
	sort.SliceStable(out, func(i, j int) bool {
		ti, okI := invoiceDate(out[i].Date)
		tj, okJ := invoiceDate(out[j].Date)
		switch {
		case okI && okJ:
			return ti.Before(tj)
		case okI:
			return true
		default:
			return false
		}
	})
	return out
}

func invoiceDate(s string) (time.Time, bool) {
	if t, err := ParseTimestamp(s, time.UTC); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// InvoiceRows prepares invoices for display, sorted by date.
func InvoiceRows(invoices []models.Invoice) []models.InvoiceRow {
	sorted := SortInvoices(invoices)
	rows := make([]models.InvoiceRow, 0, len(sorted))
	for _, inv := range sorted {
		rows = append(rows, models.InvoiceRow{
			ID:     inv.ID,
			Date:   orNA(inv.Date),
			Amount: inv.Amount().StringFixed(2),
			Status: inv.Status.Or(NotAvailable),
		})
	}
	return rows
}

// InvoiceTotal sums invoice amounts in fixed point.
func InvoiceTotal(invoices []models.Invoice) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range invoices {
		total = total.Add(inv.Amount())
	}
	return total
}
