package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/solidscore/internal/analyzer"
	"github.com/pthm/solidscore/internal/model"
)

func sampleClass() *model.ClassInfo {
	return &model.ClassInfo{
		Name:      "OrderService",
		FilePath:  "app/services/order_service.rb",
		LineStart: 1,
		LineEnd:   12,
		Methods: []*model.MethodInfo{{
			Name:       "create",
			LineStart:  2,
			LineEnd:    11,
			Complexity: 1,
			CallSites: []model.CallSite{
				{Method: "new", Receiver: model.NamedTypeReceiver("OrderRepository")},
			},
			CalledMethods: []string{"new"},
		}},
	}
}

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()
	assert.InDelta(t, 1.0, w.Sum(), 1e-9)
	assert.Equal(t, 0.30, w.Of(model.SRP))
	assert.Equal(t, 0.25, w.Of(model.DIP))
}

func TestScore(t *testing.T) {
	r := Default().Score(sampleClass())

	assert.Equal(t, "OrderService", r.ClassName)
	assert.Equal(t, "app/services/order_service.rb", r.FilePath)
	assert.Equal(t, 1, r.LineStart)
	assert.Equal(t, 12, r.LineEnd)
	assert.Equal(t, 100.0, r.SRP)
	assert.Equal(t, 100.0, r.OCP)
	assert.Equal(t, 100.0, r.LSP)
	assert.Equal(t, 100.0, r.ISP)
	assert.Equal(t, 0.0, r.DIP)

	// 100 * (0.30 + 0.15 + 0.10 + 0.20)
	assert.InDelta(t, 75.0, r.Total(), 1e-9)
}

func TestScoreIsDeterministic(t *testing.T) {
	s := Default()
	ci := sampleClass()
	assert.Equal(t, s.Score(ci), s.Score(ci))
}

func TestTotalIsNotNormalized(t *testing.T) {
	r := Result{SRP: 100, OCP: 100, LSP: 100, ISP: 100, DIP: 100,
		Weights: Weights{SRP: 1, OCP: 1, LSP: 1, ISP: 1, DIP: 1}}
	assert.Equal(t, 500.0, r.Total())
}

func TestConfidence(t *testing.T) {
	c := Result{}.Confidence()
	assert.Equal(t, map[string]string{
		"srp": "high",
		"ocp": "low",
		"lsp": "low-medium",
		"isp": "medium-high",
		"dip": "high",
	}, c)
	assert.Equal(t, ConfidenceLow, ConfidenceOf(model.OCP))
}

func TestCustomRegistryAndWeights(t *testing.T) {
	registry := analyzer.NewRegistryWithOptions(analyzer.Options{
		Whitelist: []string{"OrderRepository"},
		LSP:       analyzer.DefaultLSPOptions(),
	})
	s := New(registry, Weights{DIP: 1})

	r := s.Score(sampleClass())
	assert.Equal(t, 100.0, r.DIP)
	assert.Equal(t, 100.0, r.Total())
	assert.Equal(t, Weights{DIP: 1}, s.Weights())
}

func TestScoreAllAndSummarize(t *testing.T) {
	a := sampleClass()
	b := &model.ClassInfo{Name: "Empty", LineStart: 1, LineEnd: 2}

	results := Default().ScoreAll([]*model.ClassInfo{a, b})
	require.Len(t, results, 2)
	assert.Equal(t, "OrderService", results[0].ClassName)
	assert.Equal(t, "Empty", results[1].ClassName)

	summary := Summarize(results)
	assert.Equal(t, 2, summary.TotalClasses)
	assert.Equal(t, 50.0, summary.Average.DIP)
	assert.Equal(t, 87.5, summary.AverageScore())

	assert.Equal(t, Summary{}, Summarize(nil))
	assert.Equal(t, 0.0, Summarize(nil).AverageScore())
}
