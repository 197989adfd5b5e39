package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fabiomatricardi/cm-log-system/entity"
)

// DefaultSearchLimit caps the rows returned by Search when no limit is given.
const DefaultSearchLimit = 20

// AttachmentWarning is returned with every successful delete.
const AttachmentWarning = "ATTACHMENTS NOT DELETED (manual cleanup required in attachments folder)"

var ErrNotFound = errors.New("log entry not found")

// ValidationError lists every rule a request broke. Nothing is written when
// it is returned.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// LogStoreConfig is built once at startup and never changed afterwards.
type LogStoreConfig struct {
	Path string
	// Now is the clock used for timestamps; defaults to time.Now.
	Now func() time.Time
}

// LogStore keeps log entries in a single JSON array file. Every call reads the
// file again; mutations hold mu for the whole read-modify-write and replace
// the file atomically. The highest id ever issued is kept in <path>.seq so
// ids are never reused after a delete.
type LogStore struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

// UpdateInput carries the editable fields of a log entry.
type UpdateInput struct {
	TagName     string
	Description string
	ReportedBy  string
	Status      string
}

func NewLogStore(cfg LogStoreConfig) (*LogStore, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, fmt.Errorf("log store path is empty")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	s := &LogStore{path: cfg.Path, now: now}

	if _, err := os.Stat(cfg.Path); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, err
		}
		if err := s.save([]entity.LogEntry{}); err != nil {
			return nil, fmt.Errorf("create log database: %w", err)
		}
		log.Printf("✅ Created new log database: %s", cfg.Path)
	}
	return s, nil
}

func (s *LogStore) Path() string { return s.path }

func (s *LogStore) load() ([]entity.LogEntry, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	var entries []entity.LogEntry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, &corruptError{err: err}
	}
	return entries, nil
}

func (s *LogStore) save(entries []entity.LogEntry) error {
	if entries == nil {
		entries = []entity.LogEntry{}
	}
	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(s.path, b)
}

// writeFileAtomic replaces path with b through a temp file in the same
// directory, so readers see either the old or the new content.
func writeFileAtomic(path string, b []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// seqPath is the sidecar holding the highest id ever handed out. Deleting the
// newest entry must not free its id for the next report.
func (s *LogStore) seqPath() string { return s.path + ".seq" }

// highWater returns the recorded high-water mark, 0 when there is none yet.
func (s *LogStore) highWater() int64 {
	b, err := os.ReadFile(s.seqPath())
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("⚠️ id high-water read error: %v", err)
		}
		return 0
	}
	n, err := strconv.ParseInt(strings.TrimSpace(string(b)), 10, 64)
	if err != nil {
		log.Printf("⚠️ id high-water file %s is malformed: %v", s.seqPath(), err)
		return 0
	}
	return n
}

// raiseHighWater records id unless a higher mark is already stored.
func (s *LogStore) raiseHighWater(id int64) error {
	if id <= s.highWater() {
		return nil
	}
	return writeFileAtomic(s.seqPath(), []byte(strconv.FormatInt(id, 10)+"\n"))
}

type corruptError struct{ err error }

func (e *corruptError) Error() string { return "malformed log database: " + e.err.Error() }
func (e *corruptError) Unwrap() error { return e.err }

// quarantine moves an unparsable log aside so a fresh one can be written
// without losing what was there.
func (s *LogStore) quarantine() (string, error) {
	dst := fmt.Sprintf("%s.corrupt-%s", s.path, s.now().Format("20060102150405"))
	if err := os.Rename(s.path, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// ReadAll returns every entry in stored order. Read failures are logged and
// yield an empty log so listing pages stay available.
func (s *LogStore) ReadAll() []entity.LogEntry {
	entries, err := s.load()
	if err != nil {
		log.Printf("⚠️ log database read error: %v", err)
		return []entity.LogEntry{}
	}
	return entries
}

// NextID reports the id the next Create would get.
func (s *LogStore) NextID() int64 {
	entries, err := s.load()
	if err != nil {
		log.Printf("⚠️ ID generation error: %v. Using timestamp-based ID.", err)
		return FallbackID(s.now(), s.highWater())
	}
	return AllocateID(entries, s.highWater())
}

// Find returns the entry with the given id.
func (s *LogStore) Find(id int64) (*entity.LogEntry, error) {
	entries, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("read log database: %w", err)
	}
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i], nil
		}
	}
	return nil, fmt.Errorf("log %s: %w", entity.FormatID(id), ErrNotFound)
}

// Create assigns the next id, forces status sent and appends the entry.
// Attachment fields are taken as given and never touched again.
func (s *LogStore) Create(e entity.LogEntry) (entity.LogEntry, error) {
	e.TagName = strings.TrimSpace(e.TagName)
	e.ReportedBy = strings.TrimSpace(e.ReportedBy)
	e.Description = strings.TrimSpace(e.Description)

	var problems []string
	if e.TagName == "" {
		problems = append(problems, "TAGNAME is mandatory")
	}
	if e.ReportedBy == "" {
		problems = append(problems, "'Reported by' is mandatory")
	}
	if len(problems) > 0 {
		return entity.LogEntry{}, &ValidationError{Problems: problems}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	highWater := s.highWater()
	entries, err := s.load()
	switch {
	case err == nil:
		e.ID = AllocateID(entries, highWater)
	case errors.Is(err, fs.ErrNotExist):
		entries = nil
		e.ID = AllocateID(nil, highWater)
	case isCorrupt(err):
		e.ID = FallbackID(s.now(), highWater)
		dst, qerr := s.quarantine()
		if qerr != nil {
			return entity.LogEntry{}, fmt.Errorf("move aside malformed log database: %w", qerr)
		}
		log.Printf("⚠️ %v; moved to %s, using timestamp-based ID %d", err, dst, e.ID)
		entries = nil
	default:
		return entity.LogEntry{}, fmt.Errorf("read log database: %w", err)
	}

	if e.Timestamp == "" {
		e.Timestamp = entity.Stamp(s.now())
	}
	if e.OriginalFilenames == nil {
		e.OriginalFilenames = []string{}
	}
	if e.StoredFilenames == nil {
		e.StoredFilenames = []string{}
	}
	e.AttachmentCount = len(e.OriginalFilenames)
	e.Status = entity.StatusSent
	e.LastEdited = nil
	e.EditedBy = nil

	// Mark first: a failed log write then skips an id instead of reusing one.
	if err := s.raiseHighWater(e.ID); err != nil {
		return entity.LogEntry{}, fmt.Errorf("record id high-water: %w", err)
	}
	if err := s.save(append(entries, e)); err != nil {
		return entity.LogEntry{}, fmt.Errorf("write log database: %w", err)
	}
	return e, nil
}

func isCorrupt(err error) bool {
	var ce *corruptError
	return errors.As(err, &ce)
}

// Search filters entries by query, newest first, at most limit rows.
func (s *LogStore) Search(query string, limit int) []entity.LogEntry {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	var out []entity.LogEntry
	for _, e := range s.ReadAll() {
		if e.Matches(query) {
			out = append(out, e)
		}
	}
	SortNewestFirst(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SortNewestFirst orders entries by id descending.
func SortNewestFirst(entries []entity.LogEntry) {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].ID > entries[j].ID })
}

func ValidateUpdate(in UpdateInput) (entity.LogStatus, error) {
	var problems []string
	if strings.TrimSpace(in.TagName) == "" {
		problems = append(problems, "TAGNAME cannot be empty")
	}
	if strings.TrimSpace(in.ReportedBy) == "" {
		problems = append(problems, "'Reported by' cannot be empty")
	}
	status, ok := entity.ParseStatus(in.Status)
	if !ok {
		problems = append(problems, fmt.Sprintf("Invalid status '%s'. Must be one of: %s",
			in.Status, strings.Join(entity.StatusNames(), ", ")))
	}
	if len(problems) > 0 {
		return "", &ValidationError{Problems: problems}
	}
	return status, nil
}

// Update overwrites the editable fields in place and stamps the edit.
func (s *LogStore) Update(id int64, in UpdateInput) (entity.LogEntry, error) {
	status, err := ValidateUpdate(in)
	if err != nil {
		return entity.LogEntry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return entity.LogEntry{}, fmt.Errorf("read log database: %w", err)
	}
	for i := range entries {
		if entries[i].ID != id {
			continue
		}
		editor := strings.TrimSpace(in.ReportedBy)
		edited := entity.Stamp(s.now())

		e := &entries[i]
		e.TagName = strings.TrimSpace(in.TagName)
		e.Description = strings.TrimSpace(in.Description)
		e.ReportedBy = editor
		e.Status = status
		e.LastEdited = &edited
		e.EditedBy = &editor

		if err := s.save(entries); err != nil {
			return entity.LogEntry{}, fmt.Errorf("write log database: %w", err)
		}
		return *e, nil
	}
	return entity.LogEntry{}, fmt.Errorf("log %s: %w", entity.FormatID(id), ErrNotFound)
}

// Delete removes the entry. Its attachment files stay on disk; the returned
// warning says so.
func (s *LogStore) Delete(id int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return "", fmt.Errorf("read log database: %w", err)
	}
	kept := make([]entity.LogEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return "", fmt.Errorf("log %s: %w", entity.FormatID(id), ErrNotFound)
	}
	// Logs written before the sidecar existed get their mark here.
	if err := s.raiseHighWater(NextSequentialID(entries) - 1); err != nil {
		return "", fmt.Errorf("record id high-water: %w", err)
	}
	if err := s.save(kept); err != nil {
		return "", fmt.Errorf("write log database: %w", err)
	}
	return AttachmentWarning, nil
}
