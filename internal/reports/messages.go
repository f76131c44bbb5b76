package reports

import (
	"fmt"

	"github.com/ukydev/fleet-reports/internal/remote"
)

// User-facing messages for failures that carry no server detail.
const (
	MsgPermission = "Permission error: the API token does not have the permissions needed to access this data."
	MsgNoResponse = "No response from server. Check your network connection."
	MsgUnexpected = "An unexpected error occurred. Please try again later."
)

// UserMessage turns a fetch error into the message shown inline on the page.
// fallback replaces a missing server detail on HTTP errors.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	re, ok := remote.AsError(err)
	if !ok {
		return MsgUnexpected
	}
	switch re.Kind {
	case remote.KindAuth:
		return MsgPermission
	case remote.KindStatus:
		detail := re.Detail
		if detail == "" {
			detail = fallback
		}
		return fmt.Sprintf("Error %d: %s", re.StatusCode, detail)
	case remote.KindNetwork:
		return MsgNoResponse
	default:
		return MsgUnexpected
	}
}
