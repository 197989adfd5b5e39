package services

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fabiomatricardi/cm-log-system/entity"
	"github.com/fabiomatricardi/cm-log-system/repository"

	"github.com/xuri/excelize/v2"
)

const ExportSheet = "Maintenance Logs"

var ErrEmptyLog = errors.New("database is empty, no logs to export")

// ExportColumns is the column order of the spreadsheet.
var ExportColumns = []string{
	"ID", "TAGNAME", "DESCRIPTION", "reported_by", "timestamp",
	"status", "attachment_count", "original_filenames",
	"stored_filenames", "last_edited", "edited_by",
}

const maxColumnWidth = 60

type ExportService struct {
	store *repository.LogStore
	dir   string
	now   func() time.Time
}

func NewExportService(store *repository.LogStore, dir string) *ExportService {
	return &ExportService{store: store, dir: dir, now: time.Now}
}

// ExportRow flattens an entry into spreadsheet cells.
func ExportRow(e entity.LogEntry) []any {
	return []any{
		e.FormattedID(),
		e.TagName,
		e.Description,
		e.ReportedBy,
		e.Timestamp,
		e.Status.Title(),
		e.AttachmentCount,
		strings.Join(e.OriginalFilenames, ", "),
		strings.Join(e.StoredFilenames, ", "),
		deref(e.LastEdited),
		deref(e.EditedBy),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ColumnWidth sizes a column to its longest value plus padding, capped at 60.
func ColumnWidth(maxLen int) float64 {
	return math.Min(float64(maxLen+2)*1.1, maxColumnWidth)
}

// Export writes every entry, in stored order, to
// <dir>/cmlogs_export_YYYYMMDD_HHMMSS.xlsx and returns the path.
func (s *ExportService) Export() (string, int, error) {
	entries := s.store.ReadAll()
	if len(entries) == 0 {
		return "", 0, ErrEmptyLog
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", 0, err
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return "", 0, err
	}

	widths := make([]int, len(ExportColumns))
	header := make([]any, len(ExportColumns))
	for i, h := range ExportColumns {
		header[i] = h
		widths[i] = utf8.RuneCountInString(h)
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &header); err != nil {
		return "", 0, err
	}

	for r, e := range entries {
		row := ExportRow(e)
		for i, v := range row {
			if n := utf8.RuneCountInString(fmt.Sprint(v)); n > widths[i] {
				widths[i] = n
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return "", 0, err
		}
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			return "", 0, err
		}
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return "", 0, err
		}
		if err := f.SetColWidth(ExportSheet, col, col, ColumnWidth(w)); err != nil {
			return "", 0, err
		}
	}
	if err := f.SetPanes(ExportSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return "", 0, err
	}

	path := filepath.Join(s.dir, fmt.Sprintf("cmlogs_export_%s.xlsx", s.now().Format("20060102_150405")))
	if err := f.SaveAs(path); err != nil {
		return "", 0, err
	}
	return path, len(entries), nil
}
