package services

import (
	"bytes"
	"mime/multipart"
	"path/filepath"
	"testing"
	"time"

	"github.com/fabiomatricardi/cm-log-system/repository"
)

type upload struct {
	name, content string
}

// fileHeaders builds real multipart headers the way gin hands them over.
func fileHeaders(t *testing.T, field string, files ...upload) []*multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		fw, err := w.CreateFormFile(field, f.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(f.content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File[field]
}

func newStore(t *testing.T) *repository.LogStore {
	t.Helper()
	s, err := repository.NewLogStore(repository.LogStoreConfig{
		Path: filepath.Join(t.TempDir(), "cmlogs-db.json"),
		Now:  func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local) },
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

type recordedChange struct {
	kind string
	id   int64
}

type fakeChanges struct {
	got []recordedChange
}

func (f *fakeChanges) NotifyChange(kind string, id int64) {
	f.got = append(f.got, recordedChange{kind, id})
}
