package meta

import (
	"fmt"
	"iter"
	"strings"

	"github.com/keshon/svcs/internal/util"
)

const (
	commitPrefix = "commit "
	authorPrefix = "Author: "
	escapeChar   = "\\"
)

// LogEntry is one commit record.
type LogEntry struct {
	Fingerprint string
	Author      string
	Message     string
}

// String renders the entry as it is stored in the log record. Message lines
// that could be read as a block header are escaped.
func (e LogEntry) String() string {
	return commitPrefix + e.Fingerprint + "\n" + authorPrefix + e.Author + "\n" + escapeMessage(e.Message) + "\n"
}

// escapeMessage prefixes message lines starting with "commit " or the escape
// character itself with a backslash.
func escapeMessage(msg string) string {
	lines := strings.Split(msg, "\n")
	for i, l := range lines {
		if strings.HasPrefix(l, commitPrefix) || strings.HasPrefix(l, escapeChar) {
			lines[i] = escapeChar + l
		}
	}
	return strings.Join(lines, "\n")
}

func unescapeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimPrefix(l, escapeChar)
	}
	return out
}

// Append prepends e to the log. The record stays newest-first and is
// rewritten atomically.
func (mc *MetaContext) Append(e LogEntry) error {
	current, err := mc.readLog()
	if err != nil {
		return err
	}

	next := e.String() + "\n" + current
	if err := util.WriteFileAtomic(mc.FS, mc.Config.LogFile(), []byte(next)); err != nil {
		return fmt.Errorf("failed to write log: %w", err)
	}
	mc.Logger.Debug("log entry appended", "fingerprint", e.Fingerprint, "author", e.Author)
	return nil
}

// LastFingerprint returns the fingerprint of the newest entry, or "".
func (mc *MetaContext) LastFingerprint() (string, error) {
	for e, err := range mc.All() {
		if err != nil {
			return "", err
		}
		return e.Fingerprint, nil
	}
	return "", nil
}

// All yields log entries newest first. Each iteration re-reads the record,
// so the sequence can be ranged over repeatedly.
func (mc *MetaContext) All() iter.Seq2[LogEntry, error] {
	return func(yield func(LogEntry, error) bool) {
		data, err := mc.readLog()
		if err != nil {
			yield(LogEntry{}, err)
			return
		}
		parseLog(data, yield)
	}
}

// Entries collects All into a slice.
func (mc *MetaContext) Entries() ([]LogEntry, error) {
	var out []LogEntry
	for e, err := range mc.All() {
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (mc *MetaContext) readLog() (string, error) {
	data, err := mc.FS.ReadFile(mc.Config.LogFile())
	if err != nil {
		if mc.FS.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read log %q: %w", mc.Config.LogFile(), err)
	}
	return string(data), nil
}

// parseLog splits the record into entries. A block starts at a "commit "
// line followed by an "Author: " line; everything up to the next block is
// the message, minus the one blank separator line that ends each block.
func parseLog(data string, yield func(LogEntry, error) bool) {
	lines := strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n")

	isHeader := func(i int) bool {
		return i+1 < len(lines) &&
			strings.HasPrefix(lines[i], commitPrefix) &&
			strings.HasPrefix(lines[i+1], authorPrefix)
	}

	i := 0
	for i < len(lines) && !isHeader(i) {
		i++
	}
	for i < len(lines) {
		e := LogEntry{
			Fingerprint: strings.TrimSpace(strings.TrimPrefix(lines[i], commitPrefix)),
			Author:      strings.TrimPrefix(lines[i+1], authorPrefix),
		}
		j := i + 2
		for j < len(lines) && !isHeader(j) {
			j++
		}
		body := lines[i+2 : j]
		if j == len(lines) && len(body) > 0 && body[len(body)-1] == "" {
			// the record's final newline
			body = body[:len(body)-1]
		}
		e.Message = strings.TrimSuffix(strings.Join(unescapeLines(body), "\n"), "\n")
		if !yield(e, nil) {
			return
		}
		i = j
	}
}
