// Package main provides the chatlens CLI entry point.
// chatlens analyzes exported WhatsApp chat transcripts.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/otherjamesbrown/chatlens/cmd"
	"github.com/otherjamesbrown/chatlens/config"
	"github.com/otherjamesbrown/chatlens/pkg/buildinfo"
)

// Global flags, shared with every analysis command.
var flags cmd.GlobalFlags

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "chatlens",
	Short: "chatlens - WhatsApp chat export analyzer",
	Long: `chatlens analyzes the plain-text chat exports produced by WhatsApp's
"Export chat" feature.

Every analysis command takes the export file as its argument, or "-" for
stdin. Most commands accept --user to limit the analysis to one sender.

COMMON WORKFLOWS:
  Explore a chat:   chatlens users chat.txt  →  chatlens analyze chat.txt --user Alice
  Word usage:       chatlens words chat.txt --stopwords stop_hinglish.txt
  Mood:             chatlens sentiment chat.txt --label negative
  Share results:    chatlens report chat.txt -o json  |  chatlens report chat.txt --publish

Output is text by default. Use --output json or --output yaml for structured data.
Lines that could not be parsed are counted in the logs, use --show-skipped to list them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print the version, commit hash, and build time of chatlens.

Use --output json or --output yaml for machine-readable output.`,
	RunE: func(c *cobra.Command, args []string) error {
		info := buildinfo.Get("chatlens")
		out := c.OutOrStdout()

		switch config.OutputFormat(flags.Output) {
		case config.OutputFormatJSON:
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		case config.OutputFormatYAML:
			return yaml.NewEncoder(out).Encode(info)
		}

		fmt.Fprintf(out, "chatlens version %s\n", info.Version)
		fmt.Fprintf(out, "  commit:     %s\n", info.Commit)
		fmt.Fprintf(out, "  built:      %s\n", info.BuildTime)
		fmt.Fprintf(out, "  go:         %s\n", info.GoVersion)
		fmt.Fprintf(out, "  platform:   %s\n", info.Platform)
		return nil
	},
}

// configCmd groups configuration commands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long:  `View and initialize the chatlens configuration file.`,
}

// configShowCmd displays current configuration.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration after the config file, environment and flags are applied.`,
	RunE: func(c *cobra.Command, args []string) error {
		cfg, err := cmd.ResolveConfig(cmd.DefaultCommandDeps(&flags))
		if err != nil {
			return err
		}

		configPath, err := configFilePath()
		if err != nil {
			return err
		}

		out := c.OutOrStdout()
		fmt.Fprintln(out, "Current configuration:")
		fmt.Fprintf(out, "  Config file:    %s\n", configPath)
		fmt.Fprintf(out, "  Output format:  %s\n", cfg.OutputFormat)
		fmt.Fprintf(out, "  Stopwords:      %s\n", valueOrDefault(cfg.StopwordsPath, "(not set)"))
		fmt.Fprintf(out, "  Date order:     %s\n", cfg.DateOrder)
		fmt.Fprintf(out, "  Log level:      %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "  Log JSON:       %t\n", cfg.LogJSON)
		fmt.Fprintf(out, "  Debug:          %t\n", cfg.Debug)
		fmt.Fprintf(out, "  Top words:      %d\n", cfg.TopWords)
		fmt.Fprintf(out, "  Top messages:   %d\n", cfg.TopMessages)
		fmt.Fprintf(out, "  Redis address:  %s\n", cfg.Redis.Address)
		fmt.Fprintf(out, "  Redis channel:  %s\n", cfg.Redis.Channel)

		return nil
	},
}

// configInitCmd initializes configuration.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration file",
	Long:  `Create a new configuration file with default values if one doesn't exist.`,
	RunE: func(c *cobra.Command, args []string) error {
		configPath, err := configFilePath()
		if err != nil {
			return fmt.Errorf("getting config path: %w", err)
		}

		out := c.OutOrStdout()

		// Check if config already exists.
		if _, err := os.Stat(configPath); err == nil {
			fmt.Fprintf(out, "Configuration file already exists: %s\n", configPath)
			fmt.Fprintln(out, "Use 'chatlens config show' to view current settings.")
			return nil
		}

		defaultCfg := config.DefaultConfig()
		if err := config.SaveConfig(defaultCfg, filepath.Dir(configPath)); err != nil {
			return fmt.Errorf("saving configuration: %w", err)
		}

		fmt.Fprintf(out, "Created configuration file: %s\n", configPath)
		fmt.Fprintln(out, "\nDefault settings:")
		fmt.Fprintf(out, "  Output format:  %s\n", defaultCfg.OutputFormat)
		fmt.Fprintf(out, "  Date order:     %s\n", defaultCfg.DateOrder)
		fmt.Fprintf(out, "  Redis address:  %s\n", defaultCfg.Redis.Address)

		return nil
	},
}

// configFilePath honours --config-dir before falling back to config.ConfigPath.
func configFilePath() (string, error) {
	if flags.ConfigDir != "" {
		return filepath.Join(flags.ConfigDir, config.DefaultConfigFile), nil
	}
	return config.ConfigPath()
}

func valueOrDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func init() {
	rootCmd.Version = buildinfo.String()

	// Global flags.
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.ConfigDir, "config-dir", "", "config directory (default is ~/.chatlens)")
	pf.StringVarP(&flags.Output, "output", "o", "", "output format: text, json, yaml")
	pf.BoolVar(&flags.Debug, "debug", false, "enable debug logging")
	pf.StringVar(&flags.Stopwords, "stopwords", "", "stopwords file for word statistics")
	pf.StringVar(&flags.DateOrder, "date-order", "", "date order of the export: dmy or mdy")
	pf.BoolVar(&flags.ShowSkipped, "show-skipped", false, "list lines that could not be parsed")
	pf.StringVar(&flags.MetricsFile, "metrics-file", "", "write pipeline metrics in Prometheus textfile format")

	rootCmd.AddGroup(
		&cobra.Group{ID: "analysis", Title: "Analysis:"},
		&cobra.Group{ID: "setup", Title: "Setup:"},
	)

	deps := cmd.DefaultCommandDeps(&flags)
	for _, c := range []*cobra.Command{
		cmd.NewAnalyzeCommand(deps),
		cmd.NewUsersCommand(deps),
		cmd.NewWordsCommand(deps),
		cmd.NewEmojiCommand(deps),
		cmd.NewSentimentCommand(deps),
		cmd.NewResponseTimesCommand(deps),
		cmd.NewSummaryCommand(deps),
		cmd.NewReportCommand(deps),
	} {
		c.GroupID = "analysis"
		rootCmd.AddCommand(c)
	}

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.GroupID = "setup"
	versionCmd.GroupID = "setup"
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	// Cancel the pipeline on interrupt.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
