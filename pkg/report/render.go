package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Title is the heading of the text rendering.
const Title = "WhatsApp Chat Analysis Report"

var titleCaser = cases.Title(language.English)

// TitleKey turns a snake_case key into a heading such as "Date Range".
func TitleKey(key string) string {
	return titleCaser.String(strings.ReplaceAll(key, "_", " "))
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteYAML writes the report as YAML.
func WriteYAML(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// WriteText writes a plain-text rendering with title-cased keys.
func WriteText(w io.Writer, r *Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", Title)
	fmt.Fprintf(&b, "Run: %s  Source: %s  Generated: %s\n", r.RunID, r.Source, r.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	b.WriteString("\nChat Summary\n")
	for _, key := range orderedKeys(r.summaryKeys, r.Summary) {
		fmt.Fprintf(&b, "  %s: %v\n", TitleKey(key), r.Summary[key])
	}

	if len(r.SentimentCounts) > 0 {
		b.WriteString("\nSentiment Distribution\n")
		for _, label := range orderedKeys(r.sentimentOrder, r.SentimentCounts) {
			fmt.Fprintf(&b, "  %-10s %d\n", label, r.SentimentCounts[label])
		}
	}

	if len(r.ResponseTimes) > 0 {
		b.WriteString("\nAverage Response Time (minutes)\n")
		names := make([]string, 0, len(r.ResponseTimes))
		for name := range r.ResponseTimes {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "  %-20s %.2f\n", name, r.ResponseTimes[name])
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// orderedKeys returns preferred when it covers m, otherwise the sorted keys
// of m. Reports decoded from JSON carry no preferred order.
func orderedKeys[V any](preferred []string, m map[string]V) []string {
	if len(preferred) == len(m) {
		return preferred
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
