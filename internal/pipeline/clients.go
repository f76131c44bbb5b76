package pipeline

import (
	"strings"

	"github.com/ukydev/fleet-reports/internal/models"
)

// UnknownClient names a visit with neither a matching client nor a title.
const UnknownClient = "Unknown client"

// ClientKey extracts one candidate client id from a visit.
type ClientKey struct {
	Field string
	Get   func(models.Visit) models.ID
}

// DefaultClientKeys is the order in which visit fields are tried to find the
// visit's client. No single field is guaranteed to be present.
var DefaultClientKeys = []ClientKey{
	{Field: "client_id", Get: func(v models.Visit) models.ID { return v.ClientID }},
	{Field: "client", Get: func(v models.Visit) models.ID { return v.Client }},
	{Field: "account", Get: func(v models.Visit) models.ID { return v.Account }},
}

// ClientDirectory finds the client a visit belongs to.
type ClientDirectory struct {
	byID map[models.ID]models.Client
	keys []ClientKey
}

// NewClientDirectory indexes clients by id. With no keys the
// DefaultClientKeys order is used.
func NewClientDirectory(clients []models.Client, keys ...ClientKey) *ClientDirectory {
	if len(keys) == 0 {
		keys = DefaultClientKeys
	}
	byID := make(map[models.ID]models.Client, len(clients))
	for _, c := range clients {
		if !c.ID.IsZero() {
			byID[c.ID] = c
		}
	}
	return &ClientDirectory{byID: byID, keys: keys}
}

// Lookup tries each key in order and returns the first client that matches,
// along with the field that matched.
func (d *ClientDirectory) Lookup(v models.Visit) (models.Client, string, bool) {
	for _, k := range d.keys {
		id := k.Get(v)
		if id.IsZero() {
			continue
		}
		if c, ok := d.byID[id]; ok {
			return c, k.Field, true
		}
	}
	return models.Client{}, "", false
}

// Name returns the client name, falling back to the visit title.
func (d *ClientDirectory) Name(v models.Visit) string {
	if c, _, ok := d.Lookup(v); ok && strings.TrimSpace(string(c.Name)) != "" {
		return string(c.Name)
	}
	if strings.TrimSpace(string(v.Title)) != "" {
		return string(v.Title)
	}
	return UnknownClient
}

// ClientVisits associates every visit with its client and resolves its driver.
func ClientVisits(visits []models.Visit, dir *ClientDirectory, drivers map[models.ID]string) []models.ClientVisitRow {
	rows := make([]models.ClientVisitRow, 0, len(visits))
	for _, v := range visits {
		rows = append(rows, models.ClientVisitRow{
			VisitID:        v.ID,
			ClientName:     dir.Name(v),
			VisitDate:      orNA(v.PlannedDate),
			ItemsDelivered: len(v.Items),
			DriverName:     ResolveName(drivers, v.Driver),
			Address:        v.Address.Or(NotAvailable),
			Status:         orNA(v.Status),
		})
	}
	return rows
}
