// Package observability provides Prometheus metrics and OpenTelemetry spans
// for chatlens pipeline runs.
package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Stage names used as metric labels and span suffixes.
const (
	StageParse     = "parse"
	StageDerive    = "derive"
	StageSentiment = "sentiment"
)

// PipelineMetrics holds the Prometheus metrics of a pipeline run.
type PipelineMetrics struct {
	LinesReadTotal      prometheus.Counter
	MessagesParsedTotal prometheus.Counter
	LinesSkippedTotal   *prometheus.CounterVec
	StageSeconds        *prometheus.HistogramVec
}

// NewPipelineMetrics registers the pipeline metrics on reg.
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	factory := promauto.With(reg)

	return &PipelineMetrics{
		LinesReadTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "chatlens_lines_read_total",
				Help: "Total transcript lines read",
			},
		),
		MessagesParsedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "chatlens_messages_parsed_total",
				Help: "Total messages accepted into the record set",
			},
		),
		LinesSkippedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatlens_lines_skipped_total",
				Help: "Total lines dropped during parsing",
			},
			[]string{"reason"},
		),
		StageSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chatlens_stage_seconds",
				Help:    "Pipeline stage latency",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"stage"},
		),
	}
}

// RecordLinesRead adds n to the lines-read counter.
func (m *PipelineMetrics) RecordLinesRead(n int) {
	m.LinesReadTotal.Add(float64(n))
}

// RecordMessagesParsed adds n to the parsed-messages counter.
func (m *PipelineMetrics) RecordMessagesParsed(n int) {
	m.MessagesParsedTotal.Add(float64(n))
}

// RecordSkipped counts one skipped line for reason.
func (m *PipelineMetrics) RecordSkipped(reason string) {
	m.LinesSkippedTotal.WithLabelValues(reason).Inc()
}

// RecordStageLatency observes the duration of a stage.
func (m *PipelineMetrics) RecordStageLatency(stage string, seconds float64) {
	m.StageSeconds.WithLabelValues(stage).Observe(seconds)
}

// WriteTextfile writes everything g gathers to path in the node exporter
// textfile collector format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("writing metrics file: %w", err)
	}
	return nil
}
