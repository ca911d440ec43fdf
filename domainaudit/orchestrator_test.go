package domainaudit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aeoaudit/audit"
	"aeoaudit/jobstore"
	"aeoaudit/model"
	"aeoaudit/score"
)

func newTestPipeline() *audit.Pipeline {
	calc := score.NewCalculator(
		score.Answerability(),
		score.StructuredData(),
		score.Authority(nil),
		score.ContentQuality(),
		score.Citationability(),
		score.Technical(),
	)
	fetcher := httpFetcherStub{}
	return audit.New(fetcher, calc, nil)
}

// httpFetcherStub performs a real HTTP GET against the test server so the
// orchestrator's discovery and per-page fetch exercise the same server.
type httpFetcherStub struct{}

func (httpFetcherStub) Fetch(ctx context.Context, target string) (*model.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	buf := make([]byte, 1<<16)
	n, _ := resp.Body.Read(buf)
	return &model.FetchResult{
		URL:        target,
		StatusCode: resp.StatusCode,
		HTML:       string(buf[:n]),
		FetchedAt:  time.Now(),
	}, nil
}

func TestOrchestrator_CompletesDomainAuditAndComputesGEOScore(t *testing.T) {
	mux := http.NewServeMux()
	page := `<html><head><title>Acme Widgets</title></head><body>
		<h1>Acme Widgets</h1>
		<p>Acme makes small mechanical widgets for industrial use.</p>
	</body></html>`
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0"?><urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
			<url><loc>http://` + r.Host + `/a</loc></url>
			<url><loc>http://` + r.Host + `/b</loc></url>
		</urlset>`))
	})
	mux.HandleFunc("/a", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(page)) })
	mux.HandleFunc("/b", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(page)) })
	server := httptest.NewServer(mux)
	defer server.Close()

	store := jobstore.New(time.Hour)
	discoverer := NewDiscoverer("testbot/1.0", false, nil)
	orch := NewOrchestrator(newTestPipeline(), discoverer, store, nil)

	jobID := orch.Start(context.Background(), server.URL, Options{MaxPages: 5, Concurrency: 2})
	require.NotEmpty(t, jobID)

	deadline := time.After(5 * time.Second)
	for {
		st, ok := store.Get(jobID)
		require.True(t, ok)
		if st.Status == model.JobCompleted || st.Status == model.JobFailed {
			assert.Equal(t, model.JobCompleted, st.Status)
			require.NotNil(t, st.Result)
			assert.Equal(t, 2, st.Result.PagesSuccessful)
			assert.NotNil(t, st.Result.GEOScore)
			return
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for job to finish")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
