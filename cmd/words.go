package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/chatlens/pkg/analytics"
)

// WordsOutput is the result of the words command.
type WordsOutput struct {
	User  string                `json:"user" yaml:"user"`
	Words []analytics.WordCount `json:"words" yaml:"words"`
	Cloud string                `json:"cloud,omitempty" yaml:"cloud,omitempty"`
}

// NewWordsCommand creates the words command with the given dependencies.
func NewWordsCommand(deps *CommandDeps) *cobra.Command {
	deps = resolveDeps(deps)
	var (
		user  string
		top   int
		cloud bool
	)

	cmd := &cobra.Command{
		Use:   "words <file>",
		Short: "Show the most common words",
		Long: `Show the most common words of a chat export.

Words are lowercased and stopwords are removed. Group notifications and
omitted-media placeholders are ignored. A stopwords file is required, set it
with --stopwords, stopwords_path in config.yaml or CHATLENS_STOPWORDS_PATH.

With --cloud the cleaned text used for a word cloud is printed as well.`,
		Example: `  chatlens words chat.txt --stopwords stop_hinglish.txt
  chatlens words chat.txt --user Alice --top 5
  chatlens words chat.txt --cloud -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ResolveConfig(deps)
			if err != nil {
				return err
			}

			path, err := cfg.ResolvedStopwordsPath()
			if err != nil {
				return err
			}
			stopwords, err := analytics.LoadStopwords(path)
			if err != nil {
				return err
			}

			s, err := runSession(cmd, deps, cfg, args[0], false)
			if err != nil {
				return err
			}

			limit := cfg.TopWords
			if cmd.Flags().Changed("top") {
				limit = top
			}

			view := s.set().Scope(user)
			out := &WordsOutput{
				User:  user,
				Words: analytics.MostCommonWords(view, stopwords, limit),
			}
			if cloud {
				out.Cloud = analytics.WordcloudInput(view, stopwords)
			}

			return writeOutput(cmd.OutOrStdout(), cfg.OutputFormat, out, func(w io.Writer) error {
				return outputWordsText(w, out)
			})
		},
	}

	userFlag(cmd, &user)
	cmd.Flags().IntVar(&top, "top", analytics.MostCommonWordsLimit, "Number of words to show")
	cmd.Flags().BoolVar(&cloud, "cloud", false, "Also print the word cloud text")
	return cmd
}

func outputWordsText(w io.Writer, out *WordsOutput) error {
	if len(out.Words) == 0 {
		fmt.Fprintf(w, "No words for %s.\n", out.User)
	} else {
		fmt.Fprintf(w, "Most Common Words: %s\n\n", out.User)
		for i, wc := range out.Words {
			fmt.Fprintf(w, "  %2d. %-20s %d\n", i+1, wc.Word, wc.Count)
		}
	}
	if out.Cloud != "" {
		fmt.Fprintf(w, "\nWord Cloud:\n%s\n", out.Cloud)
	}
	return nil
}

// EmojiOutput is the result of the emoji command.
type EmojiOutput struct {
	User  string                 `json:"user" yaml:"user"`
	Emoji []analytics.EmojiCount `json:"emoji" yaml:"emoji"`
}

// NewEmojiCommand creates the emoji command with the given dependencies.
func NewEmojiCommand(deps *CommandDeps) *cobra.Command {
	deps = resolveDeps(deps)
	var user string

	cmd := &cobra.Command{
		Use:   "emoji <file>",
		Short: "Show emoji usage",
		Long: `Show how often each emoji is used, most frequent first.

Multi-code-point emoji are counted per code point.`,
		Example: `  chatlens emoji chat.txt
  chatlens emoji chat.txt --user Bob -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd, deps, args[0], false)
			if err != nil {
				return err
			}

			out := &EmojiOutput{
				User:  user,
				Emoji: analytics.EmojiFrequency(s.set().Scope(user), deps.Emoji),
			}
			return writeOutput(cmd.OutOrStdout(), s.cfg.OutputFormat, out, func(w io.Writer) error {
				if len(out.Emoji) == 0 {
					fmt.Fprintf(w, "No emoji for %s.\n", out.User)
					return nil
				}
				fmt.Fprintf(w, "Emoji: %s\n\n", out.User)
				for _, e := range out.Emoji {
					fmt.Fprintf(w, "  %-4s %d\n", e.Emoji, e.Count)
				}
				return nil
			})
		},
	}

	userFlag(cmd, &user)
	return cmd
}
