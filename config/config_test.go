package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAppliedWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "hybrid", cfg.Fetcher.Mode)
	assert.Equal(t, 100, cfg.Domain.MaxPages)
	assert.Equal(t, 3, cfg.Domain.Concurrency)
	assert.Equal(t, 3600, cfg.Job.TTLSeconds)
	assert.Equal(t, 1.3, cfg.ContentType.Weights["answerability"]["informational"])
}

func TestNormalize_MaxPagesZeroMeansHardCeiling(t *testing.T) {
	cfg := &Config{Domain: DomainConfig{MaxPages: 0}}
	cfg.normalize()
	assert.Equal(t, domainHardCeiling, cfg.Domain.MaxPages)
}

func TestNormalize_ConcurrencyClampedToHardCap(t *testing.T) {
	cfg := &Config{Domain: DomainConfig{Concurrency: 50}}
	cfg.normalize()
	assert.Equal(t, concurrencyHardCap, cfg.Domain.Concurrency)
}
