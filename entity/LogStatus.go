package entity

import "strings"

// LogStatus is the workflow state of a log entry: sent → ongoing → completed.
// Any state may be set at any time; the order is a convention, not enforced.
type LogStatus string

const (
	StatusSent      LogStatus = "sent"
	StatusOngoing   LogStatus = "ongoing"
	StatusCompleted LogStatus = "completed"
)

// ValidStatuses lists the workflow states in display order.
var ValidStatuses = []LogStatus{StatusSent, StatusOngoing, StatusCompleted}

func (s LogStatus) Valid() bool {
	switch s {
	case StatusSent, StatusOngoing, StatusCompleted:
		return true
	}
	return false
}

// Title returns the capitalized form used in tables and exports ("Ongoing").
func (s LogStatus) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// ParseStatus accepts a status word in any case. It does not default.
func ParseStatus(v string) (LogStatus, bool) {
	s := LogStatus(strings.ToLower(strings.TrimSpace(v)))
	return s, s.Valid()
}

// StatusNames returns the workflow states as plain strings.
func StatusNames() []string {
	out := make([]string, 0, len(ValidStatuses))
	for _, s := range ValidStatuses {
		out = append(out, string(s))
	}
	return out
}
