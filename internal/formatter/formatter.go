// package formatter renders profile documents and track history for the CLI (plain text, Markdown, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/desertthunder/moodtunes/internal/models"
)

// profileFieldOrder lists the well-known document keys in display order.
var profileFieldOrder = []string{
	models.KeyAge,
	models.KeyHoursPerDay,
	models.KeyBPM,
	models.KeyWhileWorking,
	models.KeyInstrumental,
	models.KeyComposer,
	models.KeyExploratory,
	models.KeyForeignLangs,
	models.KeyAnxiety,
	models.KeyDepression,
	models.KeyInsomnia,
	models.KeyOCD,
	models.KeyMusicEffects,
}

// ProfileToText renders a profile document as aligned plain text.
func ProfileToText(email string, profile models.Profile) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Profile: %s\n\n", email))
	for _, key := range orderedKeys(profile) {
		buf.WriteString(fmt.Sprintf("  %-28s %v\n", key, profile[key]))
	}

	return buf.Bytes()
}

// ProfileToMarkdown renders a profile document as a Markdown table.
func ProfileToMarkdown(email string, profile models.Profile) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Profile: %s\n\n", email))
	buf.WriteString("| Field | Value |\n|---|---|\n")
	for _, key := range orderedKeys(profile) {
		buf.WriteString(fmt.Sprintf("| %s | %v |\n", key, profile[key]))
	}

	return buf.Bytes()
}

// ProfileToJSON renders a profile document as indented JSON.
func ProfileToJSON(profile models.Profile) ([]byte, error) {
	return json.MarshalIndent(profile, "", "  ")
}

// orderedKeys returns the profile's keys with well-known fields first,
// frequency fields next, and anything else alphabetically at the end.
func orderedKeys(profile models.Profile) []string {
	seen := make(map[string]bool, len(profile))
	var keys []string

	for _, key := range profileFieldOrder {
		if _, ok := profile[key]; ok {
			keys = append(keys, key)
			seen[key] = true
		}
	}
	for _, pair := range models.FrequencyGenres {
		for _, key := range pair {
			if _, ok := profile[key]; ok && !seen[key] {
				keys = append(keys, key)
				seen[key] = true
			}
		}
	}

	var rest []string
	for key := range profile {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)

	return append(keys, rest...)
}

// HistoryToText renders track records as plain text, one line per row.
func HistoryToText(records []*models.TrackRecord) []byte {
	var buf bytes.Buffer

	if len(records) == 0 {
		buf.WriteString("No history yet.\n")
		return buf.Bytes()
	}

	for i, record := range records {
		url := record.TrackURL
		if url == "" {
			url = "-"
		}
		buf.WriteString(fmt.Sprintf("%d. [%s] %s %s (%s) %s\n",
			i+1,
			record.CreatedAt().Format(time.DateTime),
			record.Kind,
			record.Genre,
			record.Status,
			url,
		))
	}

	return buf.Bytes()
}

// HistoryToMarkdown renders track records as a Markdown table.
func HistoryToMarkdown(records []*models.TrackRecord) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Track History\n\n")
	buf.WriteString("| When | Kind | Genre | Status | URL |\n|---|---|---|---|---|\n")
	for _, record := range records {
		buf.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
			record.CreatedAt().Format(time.DateTime),
			record.Kind,
			record.Genre,
			record.Status,
			record.TrackURL,
		))
	}

	return buf.Bytes()
}

// HistoryToCSV renders track records as CSV with columns: When, Kind, Genre, Status, TaskID, URL
func HistoryToCSV(records []*models.TrackRecord) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"When", "Kind", "Genre", "Status", "TaskID", "URL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.CreatedAt().Format(time.RFC3339),
			record.Kind,
			record.Genre,
			record.Status,
			record.TaskID,
			record.TrackURL,
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}
