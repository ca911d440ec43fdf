// Package llmclient provides the outbound AI-citation client abstraction
// (§6): query(prompt) -> {text, citations[]}. Implementations wrap arbitrary
// providers; missing providers disable the AI-Citation category rather than
// fail the audit. A narrow Provider/Client capability pair, generalized to
// the query/citations response contract.
package llmclient

import (
	"context"
	"errors"
)

// ErrNoProvider is returned when no provider is configured or available.
var ErrNoProvider = errors.New("llmclient: no provider available")

// Response is the outbound contract of §6: a completion plus any citation
// spans the provider surfaced.
type Response struct {
	Text       string
	Citations  []string
}

// Provider defines the interface for an AI engine backend queried for
// citation signals.
type Provider interface {
	Name() string
	Available() bool
	Query(ctx context.Context, prompt string) (Response, error)
}

// Client manages configured providers and selects the best available one.
type Client struct {
	providers []Provider
	preferred Provider
}

// NewClient builds a client over zero or more providers. Zero providers is
// the null-object default the core constructs when the operator configures
// none (§9).
func NewClient(providers ...Provider) *Client {
	return &Client{providers: providers}
}

// SetPreferred pins a specific provider by name, bypassing auto-selection.
func (c *Client) SetPreferred(name string) bool {
	for _, p := range c.providers {
		if p.Name() == name && p.Available() {
			c.preferred = p
			return true
		}
	}
	return false
}

// ActiveProvider returns the preferred provider if available, else the
// first available provider, else nil.
func (c *Client) ActiveProvider() Provider {
	if c.preferred != nil && c.preferred.Available() {
		return c.preferred
	}
	for _, p := range c.providers {
		if p.Available() {
			return p
		}
	}
	return nil
}

// Available reports whether any provider can currently serve a query.
func (c *Client) Available() bool {
	return c.ActiveProvider() != nil
}

// Query sends prompt to the active provider.
func (c *Client) Query(ctx context.Context, prompt string) (Response, error) {
	p := c.ActiveProvider()
	if p == nil {
		return Response{}, ErrNoProvider
	}
	return p.Query(ctx, prompt)
}

// Engines returns every configured provider that reports itself available,
// capped at three per §4.E ("queried against the configured engines
// (expected: up to three)").
func (c *Client) Engines() []Provider {
	var out []Provider
	for _, p := range c.providers {
		if p.Available() {
			out = append(out, p)
			if len(out) == 3 {
				break
			}
		}
	}
	return out
}

// ProviderInfo describes one configured provider's status.
type ProviderInfo struct {
	Name      string
	Available bool
}

// ListProviders reports every configured provider's status, for diagnostics.
func (c *Client) ListProviders() []ProviderInfo {
	infos := make([]ProviderInfo, 0, len(c.providers))
	for _, p := range c.providers {
		infos = append(infos, ProviderInfo{Name: p.Name(), Available: p.Available()})
	}
	return infos
}
