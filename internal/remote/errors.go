package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a failed vendor call.
type Kind int

const (
	// KindUnexpected covers failures on our side: bad paths, undecodable bodies.
	KindUnexpected Kind = iota
	// KindNetwork means no response was received.
	KindNetwork
	// KindStatus is a non-2xx response other than 401.
	KindStatus
	// KindAuth is a 401 response.
	KindAuth
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindStatus:
		return "status"
	case KindAuth:
		return "auth"
	default:
		return "unexpected"
	}
}

// Error is returned for every failed vendor call.
type Error struct {
	Kind       Kind
	StatusCode int
	Detail     string // server-provided detail message, if any
	Path       string
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindAuth, KindStatus:
		if e.Detail != "" {
			return fmt.Sprintf("GET %s: status %d: %s", e.Path, e.StatusCode, e.Detail)
		}
		return fmt.Sprintf("GET %s: status %d", e.Path, e.StatusCode)
	default:
		if e.Err != nil {
			return fmt.Sprintf("GET %s: %s: %v", e.Path, e.Kind, e.Err)
		}
		return fmt.Sprintf("GET %s: %s", e.Path, e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// AsError extracts a *Error from err.
func AsError(err error) (*Error, bool) {
	var re *Error
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// IsAuth reports whether err is a 401 from the vendor.
func IsAuth(err error) bool {
	re, ok := AsError(err)
	return ok && re.Kind == KindAuth
}

func statusError(path string, code int, body []byte) *Error {
	kind := KindStatus
	if code == http.StatusUnauthorized {
		kind = KindAuth
	}
	return &Error{Kind: kind, StatusCode: code, Detail: detailFrom(body), Path: path}
}

// detailFrom extracts the "detail" message the vendor puts in error bodies.
func detailFrom(body []byte) string {
	var obj struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &obj); err != nil || len(obj.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(obj.Detail, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(string(obj.Detail))
}
