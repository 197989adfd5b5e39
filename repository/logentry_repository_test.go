package repository

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fabiomatricardi/cm-log-system/entity"
)

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.Local)

func newTestStore(t *testing.T) *LogStore {
	t.Helper()
	s, err := NewLogStore(LogStoreConfig{
		Path: filepath.Join(t.TempDir(), "cmlogs-db.json"),
		Now:  func() time.Time { return fixedNow },
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func mustCreate(t *testing.T, s *LogStore, tag, reporter string) entity.LogEntry {
	t.Helper()
	e, err := s.Create(entity.LogEntry{TagName: tag, ReportedBy: reporter})
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestNewLogStoreCreatesEmptyArray(t *testing.T) {
	s := newTestStore(t)
	if got := strings.TrimSpace(string(readFile(t, s.Path()))); got != "[]" {
		t.Fatalf("new file content = %q, want []", got)
	}
	if n := len(s.ReadAll()); n != 0 {
		t.Fatalf("expected empty log, got %d", n)
	}
}

func TestCreateFirstEntry(t *testing.T) {
	s := newTestStore(t)
	e := mustCreate(t, s, "PUMP-205", "Jane")

	all := s.ReadAll()
	if len(all) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(all))
	}
	got := all[0]
	if got.ID != 1 || e.ID != 1 {
		t.Fatalf("id = %d, want 1", got.ID)
	}
	if got.Status != entity.StatusSent {
		t.Fatalf("status = %q, want sent", got.Status)
	}
	if got.AttachmentCount != 0 {
		t.Fatalf("attachment_count = %d", got.AttachmentCount)
	}
	if got.Timestamp != "2025-03-14 09:26:53" {
		t.Fatalf("timestamp = %q", got.Timestamp)
	}
	if got.LastEdited != nil || got.EditedBy != nil {
		t.Fatalf("new entry should not carry edit fields")
	}
}

func TestCreateIDsIncreaseByOne(t *testing.T) {
	s := newTestStore(t)
	for want := int64(1); want <= 5; want++ {
		if e := mustCreate(t, s, fmt.Sprintf("TAG-%d", want), "R"); e.ID != want {
			t.Fatalf("id = %d, want %d", e.ID, want)
		}
	}
	if _, err := s.Delete(3); err != nil {
		t.Fatal(err)
	}
	if e := mustCreate(t, s, "TAG-6", "R"); e.ID != 6 {
		t.Fatalf("id after gap = %d, want 6", e.ID)
	}
}

func TestDeletedIDIsNeverReused(t *testing.T) {
	s := newTestStore(t)
	mustCreate(t, s, "A", "R")
	b := mustCreate(t, s, "B", "R")
	if _, err := s.Delete(b.ID); err != nil {
		t.Fatal(err)
	}
	if got := s.NextID(); got != 3 {
		t.Fatalf("NextID = %d, want 3", got)
	}
	c := mustCreate(t, s, "C", "R")
	if c.ID == b.ID {
		t.Fatalf("deleted id %d handed to %q", b.ID, c.TagName)
	}
	if c.ID != 3 {
		t.Fatalf("id = %d, want 3", c.ID)
	}

	// the mark survives a restart
	reopened, err := NewLogStore(LogStoreConfig{Path: s.Path(), Now: s.now})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reopened.Delete(c.ID); err != nil {
		t.Fatal(err)
	}
	if d := mustCreate(t, reopened, "D", "R"); d.ID != 4 {
		t.Fatalf("id after restart = %d, want 4", d.ID)
	}
}

func TestDeleteOnLegacyLogRecordsHighWater(t *testing.T) {
	s := newTestStore(t)
	legacy := `[{"ID_db": 1, "TAGNAME": "A", "reported_by": "R"}, {"ID_db": 7, "TAGNAME": "B", "reported_by": "R"}]`
	if err := os.WriteFile(s.Path(), []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Delete(7); err != nil {
		t.Fatal(err)
	}
	if e := mustCreate(t, s, "C", "R"); e.ID != 8 {
		t.Fatalf("id = %d, want 8", e.ID)
	}
}

func TestCreateRoundTrip(t *testing.T) {
	s := newTestStore(t)
	in := entity.LogEntry{
		TagName:           "VALVE-12",
		Description:       "Stuck half open",
		ReportedBy:        "Bob",
		Timestamp:         "2025-01-02 03:04:05",
		OriginalFilenames: []string{"a.png", "b.pdf"},
		StoredFilenames:   []string{"x_a.png", "y_b.pdf"},
		Status:            entity.StatusCompleted,
	}
	created, err := s.Create(in)
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.Find(created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.TagName != in.TagName || got.Description != in.Description || got.ReportedBy != in.ReportedBy || got.Timestamp != in.Timestamp {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Status != entity.StatusSent {
		t.Fatalf("status should be forced to sent, got %q", got.Status)
	}
	if got.AttachmentCount != 2 || strings.Join(got.StoredFilenames, ",") != "x_a.png,y_b.pdf" {
		t.Fatalf("attachments mismatch: %+v", got)
	}
}

func TestCreateValidation(t *testing.T) {
	s := newTestStore(t)
	before := readFile(t, s.Path())

	_, err := s.Create(entity.LogEntry{TagName: "  ", ReportedBy: ""})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Problems) != 2 {
		t.Fatalf("expected both problems reported, got %v", ve.Problems)
	}
	if !bytes.Equal(before, readFile(t, s.Path())) {
		t.Fatalf("store changed on invalid create")
	}
}

func TestCreateConcurrentIDsAreUnique(t *testing.T) {
	s := newTestStore(t)
	const n = 25
	var wg sync.WaitGroup
	ids := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e, err := s.Create(entity.LogEntry{TagName: fmt.Sprintf("T-%d", i), ReportedBy: "R"})
			if err != nil {
				t.Error(err)
				return
			}
			ids <- e.ID
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
	if got := len(s.ReadAll()); got != n {
		t.Fatalf("stored %d entries, want %d", got, n)
	}
}

func TestCreateOnCorruptFileUsesTimestampID(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := s.NextID(); got != 20250314092653 {
		t.Fatalf("NextID = %d", got)
	}
	if n := len(s.ReadAll()); n != 0 {
		t.Fatalf("corrupt file should read as empty, got %d", n)
	}

	e := mustCreate(t, s, "PUMP-1", "Ann")
	if e.ID != 20250314092653 {
		t.Fatalf("id = %d, want timestamp id", e.ID)
	}
	if len(fmt.Sprint(e.ID)) != 14 {
		t.Fatalf("timestamp id should have 14 digits: %d", e.ID)
	}

	moved := s.Path() + ".corrupt-20250314092653"
	if got := string(readFile(t, moved)); got != "{not json" {
		t.Fatalf("quarantined content = %q", got)
	}
	if all := s.ReadAll(); len(all) != 1 || all[0].ID != e.ID {
		t.Fatalf("unexpected log after fallback: %+v", all)
	}
}

func TestCreateOnMissingFileStartsAtOne(t *testing.T) {
	s := newTestStore(t)
	if err := os.Remove(s.Path()); err != nil {
		t.Fatal(err)
	}
	if e := mustCreate(t, s, "FAN-3", "Kim"); e.ID != 1 {
		t.Fatalf("id = %d, want 1", e.ID)
	}
}

func TestUpdateSetsAuditFields(t *testing.T) {
	s := newTestStore(t)
	orig := mustCreate(t, s, "PUMP-205", "Jane")

	got, err := s.Update(orig.ID, UpdateInput{
		TagName:     "PUMP-205A",
		Description: "seal replaced",
		ReportedBy:  " Mark ",
		Status:      "ongoing",
	})
	if err != nil {
		t.Fatal(err)
	}
	stored, err := s.Find(orig.ID)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range []entity.LogEntry{got, *stored} {
		if e.Status != entity.StatusOngoing {
			t.Fatalf("status = %q", e.Status)
		}
		if e.LastEdited == nil || *e.LastEdited != "2025-03-14 09:26:53" {
			t.Fatalf("last_edited = %v", e.LastEdited)
		}
		if e.EditedBy == nil || *e.EditedBy != "Mark" {
			t.Fatalf("edited_by = %v", e.EditedBy)
		}
		if e.TagName != "PUMP-205A" || e.Description != "seal replaced" || e.ReportedBy != "Mark" {
			t.Fatalf("fields not updated: %+v", e)
		}
		if e.ID != orig.ID || e.Timestamp != orig.Timestamp {
			t.Fatalf("id or timestamp changed: %+v", e)
		}
	}
}

func TestUpdateAcceptsAnyStatusOrder(t *testing.T) {
	s := newTestStore(t)
	e := mustCreate(t, s, "T", "R")
	for _, st := range []string{"completed", "sent", "Ongoing"} {
		if _, err := s.Update(e.ID, UpdateInput{TagName: "T", ReportedBy: "R", Status: st}); err != nil {
			t.Fatalf("status %q: %v", st, err)
		}
	}
}

func TestUpdateInvalidLeavesFileUntouched(t *testing.T) {
	s := newTestStore(t)
	e := mustCreate(t, s, "PUMP-205", "Jane")
	before := readFile(t, s.Path())

	cases := []UpdateInput{
		{TagName: "PUMP-205", ReportedBy: "Jane", Status: "closed"},
		{TagName: "", ReportedBy: "Jane", Status: "ongoing"},
		{TagName: "PUMP-205", ReportedBy: " ", Status: "ongoing"},
	}
	for _, in := range cases {
		_, err := s.Update(e.ID, in)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("%+v: expected ValidationError, got %v", in, err)
		}
		if !bytes.Equal(before, readFile(t, s.Path())) {
			t.Fatalf("%+v: file changed", in)
		}
	}
}

func TestUpdateInvalidStatusMessage(t *testing.T) {
	_, err := ValidateUpdate(UpdateInput{TagName: "T", ReportedBy: "R", Status: "done"})
	want := "Invalid status 'done'. Must be one of: sent, ongoing, completed"
	if err == nil || err.Error() != want {
		t.Fatalf("err = %v, want %q", err, want)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	s := newTestStore(t)
	mustCreate(t, s, "T", "R")
	_, err := s.Update(999, UpdateInput{TagName: "T", ReportedBy: "R", Status: "sent"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	mustCreate(t, s, "A", "R")
	b := mustCreate(t, s, "B", "R")

	warning, err := s.Delete(b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if warning != AttachmentWarning {
		t.Fatalf("warning = %q", warning)
	}
	for _, e := range s.ReadAll() {
		if e.ID == b.ID {
			t.Fatalf("deleted entry still present")
		}
	}
	if _, err := s.Delete(b.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestDeleteMissingLeavesCollection(t *testing.T) {
	s := newTestStore(t)
	mustCreate(t, s, "A", "R")
	before := readFile(t, s.Path())
	if _, err := s.Delete(999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !bytes.Equal(before, readFile(t, s.Path())) {
		t.Fatalf("collection changed")
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 25; i++ {
		mustCreate(t, s, fmt.Sprintf("TAG-%d", i), "R")
	}
	got := s.Search("", 0)
	if len(got) != DefaultSearchLimit {
		t.Fatalf("got %d rows, want %d", len(got), DefaultSearchLimit)
	}
	for i, e := range got {
		if want := int64(25 - i); e.ID != want {
			t.Fatalf("row %d id = %d, want %d", i, e.ID, want)
		}
	}
}

func TestSearchByStatusWord(t *testing.T) {
	s := newTestStore(t)
	for i := 1; i <= 6; i++ {
		mustCreate(t, s, fmt.Sprintf("MOTOR-%d", i), "Lee")
	}
	for _, id := range []int64{2, 5} {
		if _, err := s.Update(id, UpdateInput{TagName: fmt.Sprintf("MOTOR-%d", id), ReportedBy: "Lee", Status: "ongoing"}); err != nil {
			t.Fatal(err)
		}
	}
	got := s.Search("ONGOING", 0)
	if len(got) != 2 || got[0].ID != 5 || got[1].ID != 2 {
		t.Fatalf("unexpected result: %+v", got)
	}
	if got := s.Search("sent", 0); len(got) != 4 {
		t.Fatalf("sent rows = %d, want 4", len(got))
	}
}

func TestSearchByFormattedID(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 3; i++ {
		mustCreate(t, s, "X", "R")
	}
	got := s.Search("cm-00002", 0)
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestFindMissing(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Find(1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchStatusWordIgnoresDescription(t *testing.T) {
	s := newTestStore(t)
	mustCreate(t, s, "PUMP-1", "Lee")
	if _, err := s.Create(entity.LogEntry{TagName: "PUMP-2", Description: "ongoing leak at seal", ReportedBy: "Lee"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Update(1, UpdateInput{TagName: "PUMP-1", ReportedBy: "Lee", Status: "ongoing"}); err != nil {
		t.Fatal(err)
	}

	got := s.Search("ongoing", 0)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("search(ongoing) = %+v", got)
	}
	for _, e := range got {
		if e.Status != entity.StatusOngoing {
			t.Fatalf("%s has status %q", e.FormattedID(), e.Status)
		}
	}
	if got := s.Search("ongoing leak", 0); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("free text search = %+v", got)
	}
}
