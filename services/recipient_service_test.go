package services

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fabiomatricardi/cm-log-system/configs"
	"github.com/fabiomatricardi/cm-log-system/repository"
)

func newRecipientService(t *testing.T) *RecipientService {
	t.Helper()
	dir := t.TempDir()
	return NewRecipientService(repository.NewRecipientRepository(), configs.Departments{Items: []configs.Department{
		{Key: "inst", Name: "INST", RecipientsFile: filepath.Join(dir, "CMemails.txt")},
	}})
}

func TestRecipientServiceSave(t *testing.T) {
	svc := newRecipientService(t)

	list, msg, err := svc.Save("inst", "# team\nlead@example.com\nops@example.com\n")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(msg, "Successfully saved 2 recipient(s)") {
		t.Fatalf("msg = %q", msg)
	}
	if len(list.Valid) != 2 {
		t.Fatalf("valid = %v", list.Valid)
	}

	got, err := svc.Get("INST")
	if err != nil {
		t.Fatal(err)
	}
	if got.Content != "# team\nlead@example.com\nops@example.com\n" {
		t.Fatalf("content = %q", got.Content)
	}
}

func TestRecipientServiceSaveWithoutAddresses(t *testing.T) {
	svc := newRecipientService(t)
	_, msg, err := svc.Save("inst", "# nobody yet\n")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(msg, "Warning: no valid emails") {
		t.Fatalf("msg = %q", msg)
	}
}

func TestRecipientServiceUnknownDepartment(t *testing.T) {
	svc := newRecipientService(t)
	if _, err := svc.Get("hr"); !errors.Is(err, ErrUnknownDepartment) {
		t.Fatalf("expected ErrUnknownDepartment, got %v", err)
	}
}
