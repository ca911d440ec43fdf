package llmclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/rotisserie/eris"
)

// defaultModel is the model every HTTPProvider requests; engines do not
// configure their own. The wire format below is the Anthropic Messages API
// shape.
const defaultModel = "claude-sonnet-4-20250514"

// HTTPProvider implements Provider against any Messages-API-compatible
// endpoint, parameterized by config rather than hardcoded to one vendor, so
// an operator can configure up to three engines (§4.E) from YAML/env
// without a new Go type per engine.
type HTTPProvider struct {
	name       string
	endpoint   string
	credential string
	model      string
	client     *http.Client
}

// NewHTTPProvider builds a named engine; Available() reports false until a
// credential is configured, matching §9's "missing providers disable the
// AI-Citation category rather than fail the audit."
func NewHTTPProvider(name, endpoint, credential string) *HTTPProvider {
	model := defaultModel
	return &HTTPProvider{
		name:       name,
		endpoint:   endpoint,
		credential: credential,
		model:      model,
		client:     &http.Client{},
	}
}

func (p *HTTPProvider) Name() string { return p.name }

func (p *HTTPProvider) Available() bool {
	return p.endpoint != "" && p.credential != ""
}

func (p *HTTPProvider) Query(ctx context.Context, prompt string) (Response, error) {
	if !p.Available() {
		return Response{}, ErrNoProvider
	}

	reqBody := messagesRequest{
		Model:     p.model,
		MaxTokens: 1024,
		Messages:  []messagesMessage{{Role: "user", Content: prompt}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return Response{}, eris.Wrapf(err, "llmclient: marshal request for %s", p.name)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Response{}, eris.Wrapf(err, "llmclient: build request for %s", p.name)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.credential)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := p.client.Do(req)
	if err != nil {
		return Response{}, eris.Wrapf(err, "llmclient: query %s", p.name)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, eris.Wrapf(err, "llmclient: read response from %s", p.name)
	}
	if resp.StatusCode != http.StatusOK {
		return Response{}, eris.Errorf("llmclient: %s returned status %d: %s", p.name, resp.StatusCode, string(body))
	}

	var parsed messagesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Response{}, eris.Wrapf(err, "llmclient: parse response from %s", p.name)
	}

	var text string
	for _, block := range parsed.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	return Response{Text: text}, nil
}

type messagesRequest struct {
	Model     string            `json:"model"`
	MaxTokens int               `json:"max_tokens"`
	Messages  []messagesMessage `json:"messages"`
}

type messagesMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text,omitempty"`
	} `json:"content"`
}
