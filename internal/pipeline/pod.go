package pipeline

import (
	"strings"

	"github.com/ukydev/fleet-reports/internal/models"
)

// DefaultNotes is shown for proof-of-delivery records without notes.
const DefaultNotes = "No notes"

// ProofOfDelivery keeps the visits that carry a picture or a signature.
// Only the first picture is kept even when there are several.
func ProofOfDelivery(visits []models.Visit) []models.PODRecord {
	out := make([]models.PODRecord, 0)
	for _, v := range visits {
		image := firstPicture(v.Pictures)
		signature := ""
		if v.Signature != nil {
			signature = strings.TrimSpace(v.Signature.URL)
		}
		if image == "" && signature == "" {
			continue
		}
		notes := v.Notes.Or(DefaultNotes)
		out = append(out, models.PODRecord{
			VisitID:      v.ID,
			ClientName:   visitTitle(v),
			Address:      v.Address.Or(NotAvailable),
			Status:       orNA(v.Status),
			ImageURL:     image,
			SignatureURL: signature,
			Notes:        notes,
		})
	}
	return out
}

func firstPicture(pictures []models.Attachment) string {
	for _, p := range pictures {
		if u := strings.TrimSpace(p.URL); u != "" {
			return u
		}
	}
	return ""
}
