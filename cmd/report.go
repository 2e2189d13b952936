package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/chatlens/config"
	"github.com/otherjamesbrown/chatlens/pkg/analytics"
	chaterrors "github.com/otherjamesbrown/chatlens/pkg/errors"
	"github.com/otherjamesbrown/chatlens/pkg/logging"
	"github.com/otherjamesbrown/chatlens/pkg/records"
	"github.com/otherjamesbrown/chatlens/pkg/report"
	"github.com/otherjamesbrown/chatlens/pkg/responsetime"
	"github.com/otherjamesbrown/chatlens/pkg/summary"
)

// NewReportCommand creates the report command with the given dependencies.
func NewReportCommand(deps *CommandDeps) *cobra.Command {
	deps = resolveDeps(deps)
	var publish bool

	cmd := &cobra.Command{
		Use:   "report <file>",
		Short: "Build the exportable chat report",
		Long: `Build the chat report: the summary, average response times and the
sentiment distribution, stamped with the run ID.

With --publish the report is also published to the configured Redis channel
(redis.address and redis.channel in config.yaml).`,
		Example: `  chatlens report chat.txt
  chatlens report chat.txt -o json > report.json
  chatlens report chat.txt --publish`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd, deps, args[0], true)
			if err != nil {
				return err
			}

			set := s.set()
			r := report.Build(
				s.result.RunID,
				s.result.Source,
				summary.Generate(set),
				responsetime.Analyze(set),
				analytics.SentimentStats(set.Scope(records.Overall)),
			)

			if publish {
				if err := publishReport(cmd, deps, s, r); err != nil {
					return err
				}
			}

			w := cmd.OutOrStdout()
			switch s.cfg.OutputFormat {
			case config.OutputFormatJSON:
				return report.WriteJSON(w, r)
			case config.OutputFormatYAML:
				return report.WriteYAML(w, r)
			default:
				return report.WriteText(w, r)
			}
		},
	}

	cmd.Flags().BoolVar(&publish, "publish", false, "Publish the report to the configured Redis channel")
	return cmd
}

func publishReport(cmd *cobra.Command, deps *CommandDeps, s *session, r *report.Report) error {
	ctx := cmd.Context()
	pub, err := deps.NewPublisher(ctx, s.cfg.Redis, s.logger)
	if err != nil {
		return publishError("connecting to redis", err)
	}
	defer pub.Close()

	receivers, err := pub.Publish(ctx, r)
	if err != nil {
		return publishError("publishing report", err)
	}
	s.logger.Info("Report published",
		logging.F("channel", pub.Channel()),
		logging.F("receivers", receivers),
		logging.F("run_id", r.RunID))
	return nil
}

func publishError(msg string, err error) error {
	return &chaterrors.StageError{
		Code:    chaterrors.CodePublish,
		Stage:   "publish",
		Message: fmt.Sprintf("%s: %v", msg, err),
		Cause:   err,
	}
}
