package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/chatlens/pkg/responsetime"
)

// NewResponseTimesCommand creates the response-times command with the given dependencies.
func NewResponseTimesCommand(deps *CommandDeps) *cobra.Command {
	deps = resolveDeps(deps)

	return &cobra.Command{
		Use:   "response-times <file>",
		Short: "Show average reply times per sender",
		Long: `Show how long each sender takes to reply, in minutes.

A reply is a message that directly follows a message from someone else.
Gaps of zero or more than a day are ignored, as are group notifications.
Senders with fewer than 3 replies are not reported.`,
		Example: `  chatlens response-times chat.txt
  chatlens response-times chat.txt -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd, deps, args[0], false)
			if err != nil {
				return err
			}

			averages := responsetime.Analyze(s.set())
			return writeOutput(cmd.OutOrStdout(), s.cfg.OutputFormat, averages, func(w io.Writer) error {
				if len(averages) == 0 {
					fmt.Fprintln(w, "Not enough replies to compute response times.")
					return nil
				}
				fmt.Fprintln(w, "Average Response Time (minutes):")
				fmt.Fprintln(w)
				fmt.Fprintf(w, "  %-20s %10s %8s\n", "SENDER", "MINUTES", "REPLIES")
				for _, a := range averages {
					fmt.Fprintf(w, "  %-20s %10.2f %8d\n", a.Sender, a.Minutes, a.Samples)
				}
				return nil
			})
		},
	}
}
