package models

import "github.com/shopspring/decimal"

// Invoice is a billing record from the vendor datamart.
type Invoice struct {
	ID          ID                  `json:"id"`
	Date        string              `json:"date"`
	TotalAmount decimal.NullDecimal `json:"total_amount"`
	Currency    Text                `json:"currency"`
	Status      Text                `json:"status"`
}

// Amount returns the invoice total, zero when missing.
func (i Invoice) Amount() decimal.Decimal {
	if !i.TotalAmount.Valid {
		return decimal.Zero
	}
	return i.TotalAmount.Decimal
}
