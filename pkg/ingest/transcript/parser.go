package transcript

import (
	"bufio"
	"io"
	"regexp"
	"strings"
	"unicode"

	textunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// maxLineBytes bounds a single physical line; long pasted messages exceed
// bufio's 64 KiB default.
const maxLineBytes = 1 << 20

// Matches a message start: 11/1/25, 1:49 PM - rest of line
// Separators may be any Unicode space; exports use U+202F and U+00A0 as well as
// ASCII spaces. The time may carry an AM/PM marker.
var messageStartRegex = regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2,4}),[\s\p{Zs}](\d{1,2}:\d{2}(?:[\s\p{Zs}]?[APap][Mm])?)[\s\p{Zs}]-[\s\p{Zs}](.*)$`)

// pendingLine is a message start line with its continuations appended.
type pendingLine struct {
	lineNumber int
	text       string
}

// Parse reads a transcript and returns its messages in input order.
// Non-blank lines before the first message start are reported in
// Result.Skipped. Timestamps are not validated here (see ParseTimestamp).
func Parse(r io.Reader) (*Result, error) {
	decoded := transform.NewReader(r, textunicode.BOMOverride(textunicode.UTF8.NewDecoder()))
	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	result := &Result{
		Messages: make([]RawMessage, 0),
		Skipped:  make([]SkippedLine, 0),
	}

	merged := make([]pendingLine, 0)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()

		if messageStartRegex.MatchString(line) {
			merged = append(merged, pendingLine{lineNumber: lineNumber, text: line})
			continue
		}

		if len(merged) == 0 {
			if strings.TrimSpace(line) != "" {
				result.Skipped = append(result.Skipped, SkippedLine{
					LineNumber: lineNumber,
					Text:       line,
					Reason:     ReasonBeforeFirstMessage,
				})
			}
			continue
		}

		// Continuation of the previous message
		last := &merged[len(merged)-1]
		last.text += " " + strings.TrimSpace(line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	result.LinesRead = lineNumber

	for _, p := range merged {
		if msg, ok := parseLine(p); ok {
			result.Messages = append(result.Messages, msg)
		}
	}

	return result, nil
}

// parseLine splits a merged message line into date, time, sender and content.
func parseLine(p pendingLine) (RawMessage, bool) {
	matches := messageStartRegex.FindStringSubmatch(p.text)
	if matches == nil {
		return RawMessage{}, false
	}

	msg := RawMessage{
		LineNumber: p.lineNumber,
		RawDate:    matches[1],
		RawTime:    NormalizeTime(matches[2]),
	}

	rest := matches[3]
	if sender, content, found := strings.Cut(rest, ":"); found {
		msg.Sender = strings.TrimSpace(sender)
		msg.Content = strings.TrimSpace(content)
	} else {
		msg.Sender = GroupNotification
		msg.Content = strings.TrimSpace(rest)
	}

	return msg, true
}

// NormalizeTime turns every Unicode space into a plain space, trims, and
// uppercases so that am/pm become AM/PM.
func NormalizeTime(raw string) string {
	spaced := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, raw)
	return strings.ToUpper(strings.TrimSpace(spaced))
}
