package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fabiomatricardi/cm-log-system/entity"
)

func TestDisplayRecipients(t *testing.T) {
	if got := DisplayRecipients([]string{"a@x", "b@x"}); got != "a@x, b@x" {
		t.Fatalf("got %q", got)
	}
	got := DisplayRecipients([]string{"a@x", "b@x", "c@x", "d@x", "e@x"})
	if got != "a@x, b@x, c@x +2 others" {
		t.Fatalf("got %q", got)
	}
}

func TestBuildSubject(t *testing.T) {
	got := BuildSubject("CM-00004", "2025-01-01 10:00:00")
	if got != "🔧 Corrective Maintenance Notice #CM-00004 - 2025-01-01 10:00:00" {
		t.Fatalf("got %q", got)
	}
}

func TestBuildNote(t *testing.T) {
	note := BuildNote(entity.LogEntry{
		ID: 4, TagName: "PUMP-205", ReportedBy: "Jane", Timestamp: "2025-01-01 10:00:00",
		Status: entity.StatusSent, AttachmentCount: 1, OriginalFilenames: []string{"leak.jpg"},
	})
	for _, want := range []string{
		"ID: CM-00004", "TAGNAME: PUMP-205", "DESCRIPTION: None provided",
		"Reported by: Jane", "Status: sent", "Attachments: 1 file(s)", "Attached Files:\n• leak.jpg",
	} {
		if !strings.Contains(note, want) {
			t.Fatalf("note missing %q:\n%s", want, note)
		}
	}
}

func TestBuildBody(t *testing.T) {
	body := BuildBody("NOTE", "2025-01-01 10:00:00", "10.0.0.5", 2)
	for _, want := range []string{"CORRECTIVE MAINTENANCE ACTION REQUIRED", "NOTE", "System IP: 10.0.0.5", "Attachments: 2 file(s)"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
}

func TestSendWithoutPassword(t *testing.T) {
	m := NewSMTPMailer(MailerConfig{Host: "smtp.example.com", Port: 465, Sender: "cm@example.com"})
	if m.Configured() {
		t.Fatalf("mailer without password should not be configured")
	}
	if _, err := m.Send(context.Background(), Mail{Recipients: []string{"a@example.com"}}); !errors.Is(err, ErrMailNotConfigured) {
		t.Fatalf("expected ErrMailNotConfigured, got %v", err)
	}
}
