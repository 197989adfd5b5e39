package entity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the wall-clock format used for timestamp, last_edited and exports.
const TimeLayout = "2006-01-02 15:04:05"

// LogEntry is one corrective maintenance report as persisted in the JSON log.
// The JSON keys are shared with exports and older tooling and must not change.
type LogEntry struct {
	ID                int64     `json:"ID_db"`
	TagName           string    `json:"TAGNAME"`
	Description       string    `json:"DESCRIPTION"`
	ReportedBy        string    `json:"reported_by"`
	Timestamp         string    `json:"timestamp"`
	AttachmentCount   int       `json:"attachment_count"`
	OriginalFilenames []string  `json:"original_filenames"`
	StoredFilenames   []string  `json:"stored_filenames"`
	Status            LogStatus `json:"status"`
	LastEdited        *string   `json:"last_edited"`
	EditedBy          *string   `json:"edited_by"`
}

// UnmarshalJSON applies the defaults for records written before status and
// edit tracking existed.
func (e *LogEntry) UnmarshalJSON(data []byte) error {
	type raw LogEntry
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*e = LogEntry(r)
	if s, ok := ParseStatus(string(e.Status)); ok {
		e.Status = s
	} else {
		e.Status = StatusSent
	}
	if e.OriginalFilenames == nil {
		e.OriginalFilenames = []string{}
	}
	if e.StoredFilenames == nil {
		e.StoredFilenames = []string{}
	}
	return nil
}

// FormattedID renders the id as CM-00001.
func (e LogEntry) FormattedID() string {
	return FormatID(e.ID)
}

func (e LogEntry) Edited() bool {
	return e.LastEdited != nil && *e.LastEdited != ""
}

// SearchText is the lower-cased blob a search query is matched against.
func (e LogEntry) SearchText() string {
	return strings.ToLower(strings.Join([]string{
		e.FormattedID(),
		e.TagName,
		e.Description,
		e.ReportedBy,
		string(e.effectiveStatus()),
		strconv.FormatInt(e.ID, 10),
	}, " "))
}

// Matches reports whether the entry contains query (case-insensitive).
// A blank query matches everything. A query that is exactly a status word
// selects on status alone, so "ongoing" in a description does not count.
func (e LogEntry) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if status, ok := ParseStatus(q); ok {
		return e.effectiveStatus() == status
	}
	return strings.Contains(e.SearchText(), q)
}

func (e LogEntry) effectiveStatus() LogStatus {
	if e.Status == "" {
		return StatusSent
	}
	return e.Status
}

func FormatID(id int64) string {
	return fmt.Sprintf("CM-%05d", id)
}

// ParseID accepts either the formatted form (CM-00042) or a bare number.
func ParseID(v string) (int64, error) {
	v = strings.TrimSpace(v)
	if i := strings.LastIndex(v, "-"); i >= 0 && strings.EqualFold(v[:i], "CM") {
		v = v[i+1:]
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid log id %q", v)
	}
	return id, nil
}

// Stamp formats t with TimeLayout.
func Stamp(t time.Time) string {
	return t.Format(TimeLayout)
}
