package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/chatlens/pkg/summary"
)

// SummaryOutput is the result of the summary command.
type SummaryOutput struct {
	Summary   summary.Summary `json:"summary" yaml:"summary"`
	Narrative string          `json:"narrative" yaml:"narrative"`
	Bullets   []string        `json:"bullets" yaml:"bullets"`
}

// NewSummaryCommand creates the summary command with the given dependencies.
func NewSummaryCommand(deps *CommandDeps) *cobra.Command {
	deps = resolveDeps(deps)

	return &cobra.Command{
		Use:   "summary <file>",
		Short: "Summarize a chat export",
		Long: `Summarize a chat export as a short narrative and a bullet list.

The summary covers the date range, message and participant counts, the most
active user, the dominant sentiment and the peak hour.`,
		Example: `  chatlens summary chat.txt
  chatlens summary chat.txt -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd, deps, args[0], true)
			if err != nil {
				return err
			}

			sum := summary.Generate(s.set())
			out := &SummaryOutput{
				Summary:   sum,
				Narrative: summary.Narrative(sum),
				Bullets:   summary.Bullets(sum),
			}
			return writeOutput(cmd.OutOrStdout(), s.cfg.OutputFormat, out, func(w io.Writer) error {
				fmt.Fprintln(w, out.Narrative)
				fmt.Fprintln(w)
				for _, b := range out.Bullets {
					fmt.Fprintln(w, b)
				}
				return nil
			})
		},
	}
}
