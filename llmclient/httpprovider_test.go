package llmclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPProvider_UnavailableWithoutCredential(t *testing.T) {
	p := NewHTTPProvider("test-engine", "https://example.com", "")
	assert.False(t, p.Available())
}

func TestHTTPProvider_QueryExtractsTextBlocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":[{"type":"text","text":"hello "},{"type":"text","text":"world"}]}`))
	}))
	defer server.Close()

	p := NewHTTPProvider("test-engine", server.URL, "secret")
	require.True(t, p.Available())

	resp, err := p.Query(context.Background(), "ping")
	require.NoError(t, err)
	assert.Equal(t, "hello world", resp.Text)
}

func TestHTTPProvider_NonOKStatusReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	}))
	defer server.Close()

	p := NewHTTPProvider("test-engine", server.URL, "secret")
	_, err := p.Query(context.Background(), "ping")
	assert.Error(t, err)
}
