// Package pipeline runs a transcript through parsing, feature derivation and
// optional sentiment labeling, recording logs, metrics and spans per stage.
package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	chaterrors "github.com/otherjamesbrown/chatlens/pkg/errors"
	"github.com/otherjamesbrown/chatlens/pkg/ingest/transcript"
	"github.com/otherjamesbrown/chatlens/pkg/logging"
	"github.com/otherjamesbrown/chatlens/pkg/observability"
	"github.com/otherjamesbrown/chatlens/pkg/records"
	"github.com/otherjamesbrown/chatlens/pkg/sentiment"
)

// Options configures a pipeline run. Zero values are usable: day-first dates,
// no logging, no metrics, the global tracer and no sentiment labeling.
type Options struct {
	// Source names the input in logs and reports, e.g. a file path.
	Source    string
	DateOrder transcript.DateOrder
	Logger    logging.Logger
	Metrics   *observability.PipelineMetrics
	Tracer    *observability.Tracer
	// Classifier labels the set when non-nil.
	Classifier *sentiment.Classifier
}

// Result is the outcome of a run.
type Result struct {
	RunID     string
	Source    string
	Set       *records.Set
	Skipped   []transcript.SkippedLine
	LinesRead int
}

// Run parses r and builds the record set. Unparseable lines never fail the
// run; they are returned in Result.Skipped. Errors are *errors.StageError.
func Run(ctx context.Context, r io.Reader, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = logging.NewNopLogger()
	}
	if opts.Tracer == nil {
		opts.Tracer = observability.NewTracer()
	}
	if opts.DateOrder == "" {
		opts.DateOrder = transcript.DayFirst
	}

	runID := uuid.New().String()
	ctx = logging.ContextWithRunID(ctx, runID)
	logger := opts.Logger.WithContext(ctx).With(
		logging.F("component", "pipeline"),
		logging.F("source", opts.Source),
	)

	res := &Result{RunID: runID, Source: opts.Source}

	var parsed *transcript.Result
	err := runStage(ctx, opts, runID, observability.StageParse, func(span *observability.SpanHelper) error {
		var err error
		parsed, err = transcript.Parse(r)
		if err != nil {
			return err
		}
		span.SetParseCounts(parsed.LinesRead, len(parsed.Messages), len(parsed.Skipped))
		return nil
	})
	if err != nil {
		logger.Error("Parse failed", logging.Err(err))
		return nil, err
	}
	res.LinesRead = parsed.LinesRead

	err = runStage(ctx, opts, runID, observability.StageDerive, func(span *observability.SpanHelper) error {
		set, skipped := records.Build(parsed, opts.DateOrder)
		res.Set = set
		res.Skipped = append(parsed.Skipped, skipped...)
		span.SetParseCounts(parsed.LinesRead, set.Len(), len(res.Skipped))
		return nil
	})
	if err != nil {
		logger.Error("Derive failed", logging.Err(err))
		return nil, err
	}

	if opts.Classifier != nil {
		err = runStage(ctx, opts, runID, observability.StageSentiment, func(*observability.SpanHelper) error {
			opts.Classifier.Label(res.Set)
			return nil
		})
		if err != nil {
			logger.Error("Sentiment labeling failed", logging.Err(err))
			return nil, err
		}
	}

	if opts.Metrics != nil {
		opts.Metrics.RecordLinesRead(res.LinesRead)
		opts.Metrics.RecordMessagesParsed(res.Set.Len())
		for _, s := range res.Skipped {
			opts.Metrics.RecordSkipped(s.Reason)
		}
	}

	if len(res.Skipped) > 0 {
		logger.Warn("Skipped unparseable lines",
			logging.F("skipped", len(res.Skipped)),
			logging.F("lines_read", res.LinesRead))
	}
	logger.Info("Transcript loaded",
		logging.F("messages", res.Set.Len()),
		logging.F("lines_read", res.LinesRead),
		logging.F("sentiment", res.Set.HasSentiment()))

	return res, nil
}

// runStage runs fn inside a span, times it, and classifies any failure.
// A cancelled context aborts before the stage starts.
func runStage(ctx context.Context, opts Options, runID, stage string, fn func(*observability.SpanHelper) error) error {
	if err := ctx.Err(); err != nil {
		return chaterrors.ClassifyError(err, stage)
	}

	spanCtx, span := opts.Tracer.StartStageSpan(ctx, runID, stage)
	defer span.End()
	helper := observability.NewSpanHelper(span)

	start := time.Now()
	err := fn(helper)
	if opts.Metrics != nil {
		opts.Metrics.RecordStageLatency(stage, time.Since(start).Seconds())
	}

	if err != nil {
		se := chaterrors.ClassifyError(err, stage)
		helper.SetError(se, string(se.Code))
		return se
	}

	helper.SetSuccess()
	fields := []logging.Field{
		logging.F("run_id", runID),
		logging.F("stage", stage),
		logging.F("duration_ms", time.Since(start).Milliseconds()),
	}
	if traceID := observability.GetTraceID(spanCtx); traceID != "" {
		fields = append(fields, logging.F("trace_id", traceID))
	}
	opts.Logger.Debug("Stage complete", fields...)
	return nil
}
