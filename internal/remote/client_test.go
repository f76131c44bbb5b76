package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestClient_Get_SendsTokenAndUnwrapsResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Token abc123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "/v1/routes/visits/", r.URL.Path)
		w.Write([]byte(`{"count":2,"results":[{"id":1},{"id":2}]}`))
	}))
	defer server.Close()

	c := New(server.URL+"/", "abc123")
	items, err := c.Get(context.Background(), "/v1/routes/visits/")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.JSONEq(t, `{"id":1}`, string(items[0]))
}

func TestClient_Get_BareArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"a"},{"id":"b"},{"id":"c"}]`))
	}))
	defer server.Close()

	items, err := New(server.URL, "t").Get(context.Background(), "v1/accounts/drivers/")
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantKind   Kind
		wantDetail string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"detail":"Invalid token."}`, KindAuth, "Invalid token."},
		{"forbidden", http.StatusForbidden, `{"detail":"You do not have permission."}`, KindStatus, "You do not have permission."},
		{"server error without detail", http.StatusInternalServerError, `oops`, KindStatus, ""},
		{"not found with object detail", http.StatusNotFound, `{"detail":{"code":"x"}}`, KindStatus, `{"code":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := New(server.URL, "t").Get(context.Background(), "/v1/routes/vehicles/")
			require.Error(t, err)

			re, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, re.Kind)
			assert.Equal(t, tt.status, re.StatusCode)
			assert.Equal(t, tt.wantDetail, re.Detail)
			assert.Equal(t, tt.wantKind == KindAuth, IsAuth(err))
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	hc := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})}

	_, err := New("http://vendor.invalid", "t", WithHTTPClient(hc)).Get(context.Background(), "/v1/routes/visits/")
	re, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindNetwork, re.Kind)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestClient_NoRetry(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := New(server.URL, "t").Get(context.Background(), "/v1/routes/visits/")
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestClient_GetObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/routes/routes/42/", r.URL.Path)
		w.Write([]byte(`{"id":42,"total_distance":12345}`))
	}))
	defer server.Close()

	var out struct {
		ID            int     `json:"id"`
		TotalDistance float64 `json:"total_distance"`
	}
	err := New(server.URL, "t", WithRateLimit(100)).GetObject(context.Background(), "/v1/routes/routes/42/", &out)
	require.NoError(t, err)
	assert.Equal(t, 42, out.ID)
	assert.Equal(t, 12345.0, out.TotalDistance)
}

func TestClient_GetObject_BadBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	var out map[string]any
	err := New(server.URL, "t").GetObject(context.Background(), "/v1/routes/routes/1/", &out)
	re, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindUnexpected, re.Kind)
}

func TestClient_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(server.URL, "t").Get(ctx, "/v1/routes/visits/")
	re, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindNetwork, re.Kind)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestEndpointLabel(t *testing.T) {
	assert.Equal(t, "/v1/routes/routes/{id}/", endpointLabel("/v1/routes/routes/991/"))
	assert.Equal(t, "/v1/plans/{date}/vehicles/", endpointLabel("/v1/plans/2024-05-01/vehicles/"))
	assert.Equal(t, "/v1/routes/visits/", endpointLabel("/v1/routes/visits/?planned_date=2024-05-01"))
}

func TestDecodeEach(t *testing.T) {
	type named struct {
		Name string `json:"name"`
	}
	raws := []json.RawMessage{
		json.RawMessage(`{"name":"a"}`),
		json.RawMessage(`{"name":1}`),
		json.RawMessage(`{"name":"b"}`),
	}

	out, skipped := DecodeEach[named](raws)

	assert.Equal(t, []named{{"a"}, {"b"}}, out)
	require.Len(t, skipped, 1)
	assert.Contains(t, skipped[0].Error(), "record 1")
}

func TestDecodeEach_Empty(t *testing.T) {
	out, skipped := DecodeEach[map[string]any](nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
	assert.Empty(t, skipped)
}
