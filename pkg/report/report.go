// Package report assembles the exportable chat report and renders or
// publishes it.
package report

import (
	"time"

	"github.com/otherjamesbrown/chatlens/pkg/analytics"
	"github.com/otherjamesbrown/chatlens/pkg/responsetime"
	"github.com/otherjamesbrown/chatlens/pkg/summary"
)

// Report is the export envelope handed to downstream renderers.
type Report struct {
	RunID           string             `json:"run_id" yaml:"run_id"`
	GeneratedAt     time.Time          `json:"generated_at" yaml:"generated_at"`
	Source          string             `json:"source" yaml:"source"`
	Summary         map[string]any     `json:"summary" yaml:"summary"`
	ResponseTimes   map[string]float64 `json:"response_times" yaml:"response_times"`
	SentimentCounts map[string]int     `json:"sentiment_counts" yaml:"sentiment_counts"`

	summaryKeys    []string
	sentimentOrder []string
}

// Build assembles a report. Entry order of the summary and sentiment counts
// is kept for text rendering.
func Build(runID, source string, s summary.Summary, averages []responsetime.Average, sentiments []analytics.LabelCount) *Report {
	r := &Report{
		RunID:           runID,
		GeneratedAt:     time.Now().UTC(),
		Source:          source,
		Summary:         make(map[string]any),
		ResponseTimes:   responsetime.AsMap(averages),
		SentimentCounts: make(map[string]int, len(sentiments)),
	}

	for _, f := range s.Fields() {
		r.Summary[f.Key] = f.Value
		r.summaryKeys = append(r.summaryKeys, f.Key)
	}
	for _, c := range sentiments {
		r.SentimentCounts[c.Label] = c.Count
		r.sentimentOrder = append(r.sentimentOrder, c.Label)
	}

	return r
}
