package lookup

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClientInvoke(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/phone-intel", r.URL.Path)

		var req struct {
			Query string `json:"query"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "+15550100", req.Query)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"v":1}`))
	}))
	defer server.Close()

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	require.NoError(t, err)

	result, err := client.Invoke(context.Background(), "phone-intel", "+15550100")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":1}`, string(result))
}

func TestHTTPClientInvokeUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Invoke(context.Background(), "phone-intel", "+15550100")
	assert.ErrorIs(t, err, ErrLookupFailed)
}

func TestHTTPClientInvokeInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Invoke(context.Background(), "phone-intel", "+15550100")
	assert.ErrorIs(t, err, ErrLookupFailed)
}

func TestNewHTTPClientRequiresBaseURL(t *testing.T) {
	_, err := NewHTTPClient(HTTPConfig{})
	assert.Error(t, err)
}
