package entity

import "testing"

func TestParseStatus(t *testing.T) {
	for in, want := range map[string]LogStatus{
		"sent":       StatusSent,
		"ONGOING":    StatusOngoing,
		" Completed": StatusCompleted,
	} {
		got, ok := ParseStatus(in)
		if !ok || got != want {
			t.Fatalf("ParseStatus(%q) = %q,%v want %q", in, got, ok, want)
		}
	}
	for _, in := range []string{"", "done", "closed"} {
		if _, ok := ParseStatus(in); ok {
			t.Fatalf("ParseStatus(%q) should fail", in)
		}
	}
}

func TestStatusTitle(t *testing.T) {
	if got := StatusOngoing.Title(); got != "Ongoing" {
		t.Fatalf("Title = %q", got)
	}
	if got := LogStatus("").Title(); got != "" {
		t.Fatalf("empty Title = %q", got)
	}
}
