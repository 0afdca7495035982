package reporter

import (
	"encoding/json"
	"io"

	"github.com/pthm/solidscore/internal/scorer"
	"github.com/pthm/solidscore/internal/version"
)

// JSONReporter outputs results as JSON
type JSONReporter struct {
	w io.Writer
}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{w: w}
}

// JSONOutput represents the JSON output format
type JSONOutput struct {
	Version string      `json:"version"`
	Classes []JSONClass `json:"classes"`
	Summary JSONSummary `json:"summary"`
}

// JSONClass represents one scored class in JSON format
type JSONClass struct {
	ClassName  string            `json:"class_name"`
	FilePath   string            `json:"file_path"`
	LineStart  int               `json:"line_start,omitempty"`
	LineEnd    int               `json:"line_end,omitempty"`
	SRP        float64           `json:"srp"`
	OCP        float64           `json:"ocp"`
	LSP        float64           `json:"lsp"`
	ISP        float64           `json:"isp"`
	DIP        float64           `json:"dip"`
	Total      float64           `json:"total"`
	Confidence map[string]string `json:"confidence"`
}

// JSONSummary holds summary statistics for a run
type JSONSummary struct {
	TotalClasses int     `json:"total_classes"`
	AverageScore float64 `json:"average_score"`
}

// Report outputs results as JSON
func (r *JSONReporter) Report(results []scorer.Result) error {
	summary := scorer.Summarize(results)
	output := JSONOutput{
		Version: version.Short(),
		Classes: make([]JSONClass, 0, len(results)),
		Summary: JSONSummary{
			TotalClasses: summary.TotalClasses,
			AverageScore: summary.AverageScore(),
		},
	}

	for _, res := range results {
		output.Classes = append(output.Classes, JSONClass{
			ClassName:  res.ClassName,
			FilePath:   res.FilePath,
			LineStart:  res.LineStart,
			LineEnd:    res.LineEnd,
			SRP:        res.SRP,
			OCP:        res.OCP,
			LSP:        res.LSP,
			ISP:        res.ISP,
			DIP:        res.DIP,
			Total:      scorer.Round(res.Total()),
			Confidence: res.Confidence(),
		})
	}

	encoder := json.NewEncoder(r.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
