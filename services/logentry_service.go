package services

import (
	"log"

	"github.com/fabiomatricardi/cm-log-system/entity"
	"github.com/fabiomatricardi/cm-log-system/repository"
)

// LogService serves the read, edit and delete paths of the log table.
type LogService struct {
	store   *repository.LogStore
	changes ChangeNotifier
}

func NewLogService(store *repository.LogStore, changes ChangeNotifier) *LogService {
	if changes == nil {
		changes = NopNotifier{}
	}
	return &LogService{store: store, changes: changes}
}

// Rows returns the table rows matching query, newest first.
func (s *LogService) Rows(query string, limit int) []LogRow {
	return ProjectRows(s.store.Search(query, limit))
}

func (s *LogService) Options() []string {
	return SelectorOptions(s.store.ReadAll())
}

func (s *LogService) All() []entity.LogEntry {
	return s.store.ReadAll()
}

func (s *LogService) Find(id int64) (*entity.LogEntry, error) {
	return s.store.Find(id)
}

func (s *LogService) Update(id int64, in repository.UpdateInput) (entity.LogEntry, error) {
	e, err := s.store.Update(id, in)
	if err != nil {
		return e, err
	}
	log.Printf("✏️ %s updated by %s (status %s)", e.FormattedID(), *e.EditedBy, e.Status)
	s.changes.NotifyChange(ChangeUpdated, id)
	return e, nil
}

// Delete removes the entry and returns the attachment cleanup warning.
func (s *LogService) Delete(id int64) (string, error) {
	warning, err := s.store.Delete(id)
	if err != nil {
		return "", err
	}
	log.Printf("🗑️ %s deleted; %s", entity.FormatID(id), warning)
	s.changes.NotifyChange(ChangeDeleted, id)
	return warning, nil
}
