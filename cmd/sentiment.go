package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/chatlens/pkg/analytics"
	chaterrors "github.com/otherjamesbrown/chatlens/pkg/errors"
	"github.com/otherjamesbrown/chatlens/pkg/records"
	"github.com/otherjamesbrown/chatlens/pkg/sentiment"
)

var sentimentLabels = []records.Sentiment{
	records.SentimentPositive,
	records.SentimentNeutral,
	records.SentimentNegative,
}

// SentimentOutput is the result of the sentiment command.
type SentimentOutput struct {
	User     string                 `json:"user" yaml:"user"`
	Counts   []analytics.LabelCount `json:"counts" yaml:"counts"`
	Messages []LabelMessages        `json:"messages" yaml:"messages"`
}

// LabelMessages holds the most repeated messages for one label.
type LabelMessages struct {
	Label    records.Sentiment        `json:"label" yaml:"label"`
	Messages []sentiment.MessageCount `json:"messages" yaml:"messages"`
}

// parseLabel matches s case-insensitively against the sentiment labels.
// An empty string selects every label.
func parseLabel(s string) ([]records.Sentiment, error) {
	if s == "" {
		return sentimentLabels, nil
	}
	for _, l := range sentimentLabels {
		if strings.EqualFold(s, string(l)) {
			return []records.Sentiment{l}, nil
		}
	}
	return nil, fmt.Errorf("%w: invalid sentiment label %q (must be Positive, Neutral or Negative)", chaterrors.ErrValidation, s)
}

// NewSentimentCommand creates the sentiment command with the given dependencies.
func NewSentimentCommand(deps *CommandDeps) *cobra.Command {
	deps = resolveDeps(deps)
	var (
		user  string
		label string
		top   int
	)

	cmd := &cobra.Command{
		Use:   "sentiment <file>",
		Short: "Show the sentiment distribution and most common messages",
		Long: `Label every message Positive, Neutral or Negative with a VADER compound
score and show the distribution for the scope.

The most common messages are listed per label, or only for --label when given.
Omitted-media placeholders are not listed.`,
		Example: `  chatlens sentiment chat.txt
  chatlens sentiment chat.txt --user Alice --label negative --top 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			labels, err := parseLabel(label)
			if err != nil {
				return err
			}

			s, err := loadSession(cmd, deps, args[0], true)
			if err != nil {
				return err
			}

			n := s.cfg.TopMessages
			if cmd.Flags().Changed("top") {
				n = top
			}

			view := s.set().Scope(user)
			out := &SentimentOutput{
				User:     user,
				Counts:   analytics.SentimentStats(view),
				Messages: make([]LabelMessages, 0, len(labels)),
			}
			for _, l := range labels {
				out.Messages = append(out.Messages, LabelMessages{
					Label:    l,
					Messages: sentiment.MostCommonMessages(view, l, n),
				})
			}

			return writeOutput(cmd.OutOrStdout(), s.cfg.OutputFormat, out, func(w io.Writer) error {
				return outputSentimentText(w, out)
			})
		},
	}

	userFlag(cmd, &user)
	cmd.Flags().StringVar(&label, "label", "", "Only list messages with this label (Positive, Neutral, Negative)")
	cmd.Flags().IntVar(&top, "top", sentiment.DefaultTopMessages, "Number of messages to list per label")
	return cmd
}

func outputSentimentText(w io.Writer, out *SentimentOutput) error {
	fmt.Fprintf(w, "Sentiment: %s\n\n", out.User)
	if len(out.Counts) == 0 {
		fmt.Fprintln(w, "  No messages.")
	}
	for _, c := range out.Counts {
		fmt.Fprintf(w, "  %-10s %d\n", c.Label, c.Count)
	}

	for _, lm := range out.Messages {
		if len(lm.Messages) == 0 {
			continue
		}
		fmt.Fprintf(w, "\nMost Common %s Messages:\n", lm.Label)
		for _, m := range lm.Messages {
			fmt.Fprintf(w, "  %4d  %s\n", m.Count, m.Message)
		}
	}
	return nil
}
