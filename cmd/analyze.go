package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/chatlens/pkg/analytics"
	"github.com/otherjamesbrown/chatlens/pkg/logging"
	"github.com/otherjamesbrown/chatlens/pkg/records"
)

// AnalysisOutput is the full analytics result for one scope.
type AnalysisOutput struct {
	RunID           string                 `json:"run_id" yaml:"run_id"`
	User            string                 `json:"user" yaml:"user"`
	Stats           analytics.Stats        `json:"stats" yaml:"stats"`
	MonthlyTimeline []analytics.MonthPoint `json:"monthly_timeline" yaml:"monthly_timeline"`
	DailyTimeline   []analytics.DayPoint   `json:"daily_timeline" yaml:"daily_timeline"`
	WeekActivity    []analytics.LabelCount `json:"week_activity" yaml:"week_activity"`
	MonthActivity   []analytics.LabelCount `json:"month_activity" yaml:"month_activity"`
	Heatmap         analytics.Heatmap      `json:"heatmap" yaml:"heatmap"`
	BusyUsers       *analytics.BusyUsers   `json:"busy_users,omitempty" yaml:"busy_users,omitempty"`
	MediaSharers    []analytics.LabelCount `json:"media_sharers,omitempty" yaml:"media_sharers,omitempty"`
	MediaTypes      []analytics.LabelCount `json:"media_types" yaml:"media_types"`
	CommonWords     []analytics.WordCount  `json:"common_words,omitempty" yaml:"common_words,omitempty"`
	Emoji           []analytics.EmojiCount `json:"emoji" yaml:"emoji"`
	Sentiment       []analytics.LabelCount `json:"sentiment" yaml:"sentiment"`
}

// NewAnalyzeCommand creates the analyze command with the given dependencies.
func NewAnalyzeCommand(deps *CommandDeps) *cobra.Command {
	deps = resolveDeps(deps)
	var user string

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Run every analysis over a chat export",
		Long: `Run every analysis over a WhatsApp chat export.

Reports headline stats, timelines, activity maps, the weekday by hour heatmap,
media and emoji usage and the sentiment distribution. For the Overall scope the
busiest users and top media sharers are included too.

Common words are included when a stopwords file is configured.

Use "-" as the file to read from stdin.`,
		Example: `  chatlens analyze chat.txt
  chatlens analyze chat.txt --user Alice -o json
  cat chat.txt | chatlens analyze - --date-order mdy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ResolveConfig(deps)
			if err != nil {
				return err
			}

			var stopwords analytics.Stopwords
			if cfg.StopwordsPath != "" {
				path, err := cfg.ResolvedStopwordsPath()
				if err != nil {
					return err
				}
				if stopwords, err = analytics.LoadStopwords(path); err != nil {
					return err
				}
			}

			s, err := runSession(cmd, deps, cfg, args[0], true)
			if err != nil {
				return err
			}

			out := buildAnalysis(s, deps, user, stopwords)
			s.logger.Debug("Analysis complete",
				logging.F("user", user),
				logging.F("messages", out.Stats.Messages))

			return writeOutput(cmd.OutOrStdout(), cfg.OutputFormat, out, func(w io.Writer) error {
				return outputAnalysisText(w, out)
			})
		},
	}

	userFlag(cmd, &user)
	return cmd
}

func buildAnalysis(s *session, deps *CommandDeps, user string, stopwords analytics.Stopwords) *AnalysisOutput {
	set := s.set()
	view := set.Scope(user)

	out := &AnalysisOutput{
		RunID:           s.result.RunID,
		User:            user,
		Stats:           analytics.FetchStats(view, deps.URLs),
		MonthlyTimeline: analytics.MonthlyTimeline(view),
		DailyTimeline:   analytics.DailyTimeline(view),
		WeekActivity:    analytics.WeekActivityMap(view),
		MonthActivity:   analytics.MonthActivityMap(view),
		Heatmap:         analytics.ActivityHeatmap(view),
		MediaTypes:      analytics.MediaStats(view),
		Emoji:           analytics.EmojiFrequency(view, deps.Emoji),
		Sentiment:       analytics.SentimentStats(view),
	}
	if view.IsOverall() {
		busy := analytics.MostBusyUsers(set)
		out.BusyUsers = &busy
		out.MediaSharers = analytics.MostMediaSharedUsers(set)
	}
	if stopwords != nil {
		out.CommonWords = analytics.MostCommonWords(view, stopwords, s.cfg.TopWords)
	}
	return out
}

func outputAnalysisText(w io.Writer, out *AnalysisOutput) error {
	fmt.Fprintf(w, "Chat Analysis: %s\n", out.User)
	fmt.Fprintln(w, strings.Repeat("=", 40))
	fmt.Fprintf(w, "  Messages: %d\n", out.Stats.Messages)
	fmt.Fprintf(w, "  Words:    %d\n", out.Stats.Words)
	fmt.Fprintf(w, "  Media:    %d\n", out.Stats.Media)
	fmt.Fprintf(w, "  Links:    %d\n", out.Stats.Links)

	if len(out.MonthlyTimeline) > 0 {
		fmt.Fprintln(w, "\nMonthly Timeline:")
		for _, p := range out.MonthlyTimeline {
			fmt.Fprintf(w, "  %-20s %d\n", p.Label, p.Count)
		}
	}
	if len(out.DailyTimeline) > 0 {
		fmt.Fprintln(w, "\nDaily Timeline:")
		for _, p := range out.DailyTimeline {
			fmt.Fprintf(w, "  %-20s %d\n", p.Date, p.Count)
		}
	}
	printCounts(w, "Busiest Days", out.WeekActivity)
	printCounts(w, "Busiest Months", out.MonthActivity)

	if len(out.Heatmap.Days) > 0 {
		fmt.Fprintln(w, "\nActivity Heatmap:")
		fmt.Fprintf(w, "  %-10s", "")
		for _, p := range out.Heatmap.Periods {
			fmt.Fprintf(w, " %7s", p)
		}
		fmt.Fprintln(w)
		for i, day := range out.Heatmap.Days {
			fmt.Fprintf(w, "  %-10s", day)
			for _, c := range out.Heatmap.Counts[i] {
				fmt.Fprintf(w, " %7d", c)
			}
			fmt.Fprintln(w)
		}
	}

	if out.BusyUsers != nil && len(out.BusyUsers.Top) > 0 {
		printCounts(w, "Most Busy Users", out.BusyUsers.Top)
		fmt.Fprintln(w, "\nShare of Messages:")
		for _, p := range out.BusyUsers.Percent {
			fmt.Fprintf(w, "  %-20s %6.2f%%\n", p.Name, p.Percent)
		}
	}
	printCounts(w, "Top Media Sharers", out.MediaSharers)
	printCounts(w, "Media Types", out.MediaTypes)

	if len(out.CommonWords) > 0 {
		fmt.Fprintln(w, "\nMost Common Words:")
		for _, wc := range out.CommonWords {
			fmt.Fprintf(w, "  %-20s %d\n", wc.Word, wc.Count)
		}
	}
	if len(out.Emoji) > 0 {
		fmt.Fprintln(w, "\nEmoji:")
		for _, e := range out.Emoji {
			fmt.Fprintf(w, "  %-4s %d\n", e.Emoji, e.Count)
		}
	}
	printCounts(w, "Sentiment", out.Sentiment)
	return nil
}

func printCounts(w io.Writer, title string, counts []analytics.LabelCount) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, c := range counts {
		fmt.Fprintf(w, "  %-20s %d\n", c.Label, c.Count)
	}
}

// NewUsersCommand creates the users command with the given dependencies.
func NewUsersCommand(deps *CommandDeps) *cobra.Command {
	deps = resolveDeps(deps)

	return &cobra.Command{
		Use:   "users <file>",
		Short: "List the selectable users of a chat export",
		Long: `List the users that can be passed to --user.

"Overall" is always first, followed by every sender in alphabetical order.
Group notifications are not a user.`,
		Example: `  chatlens users chat.txt
  chatlens users chat.txt -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd, deps, args[0], false)
			if err != nil {
				return err
			}

			users := analytics.Users(s.set())
			return writeOutput(cmd.OutOrStdout(), s.cfg.OutputFormat, users, func(w io.Writer) error {
				for _, u := range users {
					if u == records.Overall {
						fmt.Fprintf(w, "%s\n", u)
						continue
					}
					fmt.Fprintf(w, "  %s\n", u)
				}
				return nil
			})
		},
	}
}
