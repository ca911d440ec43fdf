package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchHTTP_RespectsPerHostRateLimit(t *testing.T) {
	var count int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&count, 1)
		w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer server.Close()

	opts := DefaultOptions()
	opts.Mode = ModeHTTP
	f := New(opts, nil)

	start := time.Now()
	for i := 0; i < 3; i++ {
		result, err := f.fetchHTTP(context.Background(), server.URL)
		require.NoError(t, err)
		require.Nil(t, result.Err)
	}
	elapsed := time.Since(start)

	assert.Equal(t, int32(3), atomic.LoadInt32(&count))
	assert.GreaterOrEqual(t, elapsed, 400*time.Millisecond)
}

func TestLimiterFor_IsIndependentPerHost(t *testing.T) {
	f := New(DefaultOptions(), nil)

	a1 := f.limiterFor("example.com")
	a2 := f.limiterFor("example.com")
	b := f.limiterFor("other.example")

	assert.Same(t, a1, a2)
	assert.NotSame(t, a1, b)
}
