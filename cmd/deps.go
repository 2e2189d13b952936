// Package cmd provides CLI commands for the chatlens tool.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/otherjamesbrown/chatlens/config"
	"github.com/otherjamesbrown/chatlens/pkg/analytics"
	chaterrors "github.com/otherjamesbrown/chatlens/pkg/errors"
	"github.com/otherjamesbrown/chatlens/pkg/ingest/transcript"
	"github.com/otherjamesbrown/chatlens/pkg/logging"
	"github.com/otherjamesbrown/chatlens/pkg/observability"
	"github.com/otherjamesbrown/chatlens/pkg/pipeline"
	"github.com/otherjamesbrown/chatlens/pkg/records"
	"github.com/otherjamesbrown/chatlens/pkg/report"
	"github.com/otherjamesbrown/chatlens/pkg/sentiment"
)

// GlobalFlags are the persistent root flags shared by every command.
type GlobalFlags struct {
	ConfigDir   string
	Output      string
	Debug       bool
	Stopwords   string
	DateOrder   string
	ShowSkipped bool
	MetricsFile string
}

// ReportPublisher hands a finished report to downstream consumers.
type ReportPublisher interface {
	Publish(ctx context.Context, r *report.Report) (int64, error)
	Channel() string
	Close() error
}

// CommandDeps holds the dependencies for the analysis commands.
type CommandDeps struct {
	Flags *GlobalFlags

	LoadConfig func(dir string) (*config.CLIConfig, error)
	// Open returns the transcript at path. "-" is handled before Open is called.
	Open func(path string) (io.ReadCloser, error)

	NewScorer    func() sentiment.Scorer
	Emoji        analytics.EmojiRegistry
	URLs         analytics.URLExtractor
	NewPublisher func(ctx context.Context, cfg config.RedisConfig, logger logging.Logger) (ReportPublisher, error)
}

// DefaultCommandDeps returns the default dependencies for production use.
func DefaultCommandDeps(flags *GlobalFlags) *CommandDeps {
	if flags == nil {
		flags = &GlobalFlags{}
	}
	return &CommandDeps{
		Flags:      flags,
		LoadConfig: config.LoadConfigFrom,
		Open: func(path string) (io.ReadCloser, error) {
			return os.Open(path)
		},
		NewScorer: func() sentiment.Scorer { return sentiment.NewVaderScorer() },
		Emoji:     analytics.GomojiRegistry{},
		URLs:      analytics.RelaxedURLExtractor{},
		NewPublisher: func(ctx context.Context, cfg config.RedisConfig, logger logging.Logger) (ReportPublisher, error) {
			return report.NewPublisherFromConfig(ctx, report.PublisherConfig{
				Address:  cfg.Address,
				Password: cfg.Password,
				DB:       cfg.DB,
				Channel:  cfg.Channel,
			}, logger)
		},
	}
}

func resolveDeps(deps *CommandDeps) *CommandDeps {
	if deps == nil {
		return DefaultCommandDeps(nil)
	}
	if deps.Flags == nil {
		deps.Flags = &GlobalFlags{}
	}
	return deps
}

// ResolveConfig loads configuration and applies the global flag overrides.
func ResolveConfig(deps *CommandDeps) (*config.CLIConfig, error) {
	cfg, err := deps.LoadConfig(deps.Flags.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	f := deps.Flags
	if f.Output != "" {
		cfg.OutputFormat = config.OutputFormat(f.Output)
	}
	if f.Debug {
		cfg.Debug = true
	}
	if f.Stopwords != "" {
		cfg.StopwordsPath = f.Stopwords
	}
	if f.DateOrder != "" {
		cfg.DateOrder = transcript.DateOrder(f.DateOrder)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewLogger builds the stderr logger for cfg.
func NewLogger(cfg *config.CLIConfig, out io.Writer) logging.Logger {
	level := logging.ParseLevel(cfg.LogLevel)
	if cfg.Debug {
		level = logging.LevelDebug
	}
	return logging.NewLogger(&logging.Config{
		Level:       level,
		ServiceName: "chatlens",
		JSONFormat:  cfg.LogJSON,
		Output:      out,
	})
}

// session is one loaded transcript plus everything a command needs to report on it.
type session struct {
	cfg    *config.CLIConfig
	logger logging.Logger
	result *pipeline.Result
}

func (s *session) set() *records.Set {
	return s.result.Set
}

// loadSession resolves configuration, runs the pipeline over path, and
// handles --show-skipped and --metrics-file.
func loadSession(cmd *cobra.Command, deps *CommandDeps, path string, withSentiment bool) (*session, error) {
	cfg, err := ResolveConfig(deps)
	if err != nil {
		return nil, err
	}
	return runSession(cmd, deps, cfg, path, withSentiment)
}

func runSession(cmd *cobra.Command, deps *CommandDeps, cfg *config.CLIConfig, path string, withSentiment bool) (*session, error) {
	logger := NewLogger(cfg, cmd.ErrOrStderr())

	var in io.Reader
	if path == "-" {
		in = cmd.InOrStdin()
	} else {
		f, err := deps.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: transcript %s", chaterrors.ErrNotFound, path)
		}
		if err != nil {
			return nil, fmt.Errorf("opening transcript: %w", err)
		}
		defer f.Close()
		in = f
	}

	reg := prometheus.NewRegistry()
	opts := pipeline.Options{
		Source:    path,
		DateOrder: cfg.DateOrder,
		Logger:    logger,
		Metrics:   observability.NewPipelineMetrics(reg),
	}
	if withSentiment {
		opts.Classifier = sentiment.NewClassifier(deps.NewScorer())
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	result, err := pipeline.Run(ctx, in, opts)
	if err != nil {
		return nil, err
	}
	if result.LinesRead == 0 {
		return nil, fmt.Errorf("%w: %s has no lines", chaterrors.ErrEmptyInput, path)
	}

	if deps.Flags.ShowSkipped {
		printSkipped(cmd.ErrOrStderr(), result.Skipped)
	}
	if deps.Flags.MetricsFile != "" {
		if err := observability.WriteTextfile(deps.Flags.MetricsFile, reg); err != nil {
			return nil, err
		}
	}

	return &session{cfg: cfg, logger: logger, result: result}, nil
}

func printSkipped(w io.Writer, skipped []transcript.SkippedLine) {
	if len(skipped) == 0 {
		return
	}
	fmt.Fprintf(w, "Skipped %d line(s):\n", len(skipped))
	for _, s := range skipped {
		fmt.Fprintf(w, "  line %-6d %-22s %s\n", s.LineNumber, s.Reason, s.Text)
	}
}

// writeOutput renders v as JSON or YAML, or calls text for the text format.
func writeOutput(w io.Writer, format config.OutputFormat, v any, text func(io.Writer) error) error {
	switch format {
	case config.OutputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.OutputFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(w)
	}
}

// userFlag registers the --user scope flag.
func userFlag(cmd *cobra.Command, user *string) {
	cmd.Flags().StringVarP(user, "user", "u", records.Overall, `Sender to analyze, or "Overall" for everyone`)
}
