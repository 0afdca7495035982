package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/solidscore/internal/config"
	"github.com/pthm/solidscore/internal/scorer"
)

func TestGate(t *testing.T) {
	results := []scorer.Result{
		{ClassName: "Good", SRP: 100, OCP: 100, LSP: 100, ISP: 100, DIP: 100, Weights: scorer.DefaultWeights()},
		{ClassName: "Bad", FilePath: "bad.rb", SRP: 30, OCP: 100, LSP: 100, ISP: 100, DIP: 0, Weights: scorer.DefaultWeights()},
	}

	assert.Empty(t, Gate(results, config.Thresholds{}))
	assert.Empty(t, Gate(nil, config.Thresholds{Total: 100}))

	violations := Gate(results, config.Thresholds{Total: 70, SRP: 50})
	require.Len(t, violations, 2)

	assert.Equal(t, "Bad", violations[0].ClassName)
	assert.Equal(t, TotalMetric, violations[0].Metric)
	assert.InDelta(t, 54.0, violations[0].Score, 1e-9)

	assert.Equal(t, "srp", violations[1].Metric)
	assert.Equal(t, 30.0, violations[1].Score)
	assert.Equal(t, "Bad (bad.rb): srp 30.0 is below 50.0", violations[1].String())

	failing := Failing(results, config.Thresholds{DIP: 1})
	require.Len(t, failing, 1)
	assert.Equal(t, "Bad", failing[0].ClassName)
}

func TestGateBoundaryPasses(t *testing.T) {
	results := []scorer.Result{{ClassName: "Edge", SRP: 50, Weights: scorer.Weights{SRP: 1}}}
	assert.Empty(t, Gate(results, config.Thresholds{Total: 50, SRP: 50}))
}
