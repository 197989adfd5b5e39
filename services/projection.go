package services

import (
	"github.com/fabiomatricardi/cm-log-system/entity"
	"github.com/fabiomatricardi/cm-log-system/repository"
)

// NoLogsOption is the single selector option shown for an empty log.
const NoLogsOption = "No logs available"

const (
	descriptionLimit = 50
	ellipsis         = "..."
)

// LogRow is one line of the log table.
type LogRow struct {
	ID          string `json:"id"`
	TagName     string `json:"tagName"`
	Description string `json:"description"`
	ReportedBy  string `json:"reportedBy"`
	Timestamp   string `json:"timestamp"`
	Attachments int    `json:"attachments"`
	Status      string `json:"status"`
	Edited      string `json:"edited"`
}

// TruncateDescription shortens text longer than 50 characters to 47 plus "...".
func TruncateDescription(s string) string {
	r := []rune(s)
	if len(r) <= descriptionLimit {
		return s
	}
	return string(r[:descriptionLimit-len(ellipsis)]) + ellipsis
}

func ProjectRow(e entity.LogEntry) LogRow {
	status := e.Status
	if status == "" {
		status = entity.StatusSent
	}
	row := LogRow{
		ID:          e.FormattedID(),
		TagName:     e.TagName,
		Description: TruncateDescription(e.Description),
		ReportedBy:  e.ReportedBy,
		Timestamp:   e.Timestamp,
		Attachments: e.AttachmentCount,
		Status:      status.Title(),
	}
	if e.Edited() {
		row.Edited = "✅"
	}
	return row
}

// ProjectRows keeps the order it is given.
func ProjectRows(entries []entity.LogEntry) []LogRow {
	rows := make([]LogRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, ProjectRow(e))
	}
	return rows
}

// SelectorOptions lists formatted ids newest first for the edit/delete picker.
func SelectorOptions(entries []entity.LogEntry) []string {
	if len(entries) == 0 {
		return []string{NoLogsOption}
	}
	sorted := append([]entity.LogEntry(nil), entries...)
	repository.SortNewestFirst(sorted)
	out := make([]string, 0, len(sorted))
	for _, e := range sorted {
		out = append(out, e.FormattedID())
	}
	return out
}
