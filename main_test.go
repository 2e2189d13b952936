package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/otherjamesbrown/chatlens/pkg/buildinfo"
)

func TestVersionCommand(t *testing.T) {
	if versionCmd == nil {
		t.Fatal("versionCmd is nil")
	}

	if versionCmd.Use != "version" {
		t.Errorf("Unexpected Use: %s", versionCmd.Use)
	}

	if versionCmd.Short != "Print version information" {
		t.Errorf("Unexpected Short: %s", versionCmd.Short)
	}
}

func TestVersionOutput(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	defer versionCmd.SetOut(nil)

	if err := versionCmd.RunE(versionCmd, nil); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	if !strings.HasPrefix(buf.String(), "chatlens version "+buildinfo.Version) {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestVersionOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	defer versionCmd.SetOut(nil)

	flags.Output = "json"
	defer func() { flags.Output = "" }()

	if err := versionCmd.RunE(versionCmd, nil); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	var info buildinfo.Info
	if err := json.Unmarshal(buf.Bytes(), &info); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if info.Name != "chatlens" {
		t.Errorf("Name = %q, want chatlens", info.Name)
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	want := []string{
		"analyze", "users", "words", "emoji", "sentiment",
		"response-times", "summary", "report", "config", "version",
	}

	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}

	for _, name := range want {
		if !registered[name] {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRootPersistentFlags(t *testing.T) {
	for _, name := range []string{"config-dir", "output", "debug", "stopwords", "date-order", "show-skipped", "metrics-file"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("--%s flag not found on root command", name)
		}
	}

	if f := rootCmd.PersistentFlags().ShorthandLookup("o"); f == nil || f.Name != "output" {
		t.Error("-o should be the shorthand for --output")
	}
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	flags.ConfigDir = dir
	defer func() { flags.ConfigDir = "" }()

	var buf bytes.Buffer
	configInitCmd.SetOut(&buf)
	defer configInitCmd.SetOut(nil)

	if err := configInitCmd.RunE(configInitCmd, nil); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if !strings.Contains(buf.String(), "Created configuration file") {
		t.Errorf("unexpected output: %q", buf.String())
	}

	buf.Reset()
	if err := configInitCmd.RunE(configInitCmd, nil); err != nil {
		t.Fatalf("second config init failed: %v", err)
	}
	if !strings.Contains(buf.String(), "already exists") {
		t.Errorf("expected already-exists message, got %q", buf.String())
	}
}

func TestConfigShow(t *testing.T) {
	dir := t.TempDir()
	flags.ConfigDir = dir
	defer func() { flags.ConfigDir = "" }()

	var buf bytes.Buffer
	configShowCmd.SetOut(&buf)
	defer configShowCmd.SetOut(nil)

	if err := configShowCmd.RunE(configShowCmd, nil); err != nil {
		t.Fatalf("config show failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Current configuration:", "Output format:  text", "Date order:     dmy"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
