package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"github.com/fabiomatricardi/cm-log-system/configs"
	"github.com/fabiomatricardi/cm-log-system/entity"
	"github.com/fabiomatricardi/cm-log-system/repository"
)

var ErrUnknownDepartment = errors.New("unknown department")

// mailErrorLimit caps the mail error text shown to the reporter, in characters.
const mailErrorLimit = 150

// Outcome tells a saved submission apart by what happened to the email.
// A submission that was not saved returns an error instead.
type Outcome string

const (
	OutcomeNotified         Outcome = "notified"
	OutcomeSavedNotNotified Outcome = "saved_not_notified"
)

// SubmitForm is what the report form posts.
type SubmitForm struct {
	TagName     string
	Description string
	ReportedBy  string
	Files       []*multipart.FileHeader
}

type SubmitResult struct {
	Entry      entity.LogEntry `json:"entry"`
	Department string          `json:"department"`
	Outcome    Outcome         `json:"outcome"`
	Message    string          `json:"message"`
	Attached   []string        `json:"attached,omitempty"`
}

// RecipientLoader returns the addresses listed in a recipient file.
type RecipientLoader interface {
	Load(path string) ([]string, error)
}

// NotificationRecorder keeps the delivery history.
type NotificationRecorder interface {
	Create(n *entity.Notification) error
}

type SubmissionDeps struct {
	Store          *repository.LogStore
	Attachments    *AttachmentStorage
	Recipients     RecipientLoader
	Mailer         Mailer
	History        NotificationRecorder
	Changes        ChangeNotifier
	Departments    configs.Departments
	MaxAttachments int
}

// SubmissionService runs validate → store files → save → notify. Nothing is
// emailed unless the save succeeded.
type SubmissionService struct {
	deps SubmissionDeps
	now  func() time.Time
}

func NewSubmissionService(deps SubmissionDeps) *SubmissionService {
	if deps.Changes == nil {
		deps.Changes = NopNotifier{}
	}
	return &SubmissionService{deps: deps, now: time.Now}
}

func (s *SubmissionService) Departments() configs.Departments {
	return s.deps.Departments
}

func (s *SubmissionService) validate(form SubmitForm) error {
	var problems []string
	if strings.TrimSpace(form.TagName) == "" {
		problems = append(problems, "TAGNAME is mandatory")
	}
	if strings.TrimSpace(form.ReportedBy) == "" {
		problems = append(problems, "'Reported by' is mandatory")
	}
	problems = append(problems, CheckUploads(form.Files, s.deps.MaxAttachments)...)
	if len(problems) > 0 {
		return &repository.ValidationError{Problems: problems}
	}
	return nil
}

func (s *SubmissionService) Submit(ctx context.Context, department string, form SubmitForm) (*SubmitResult, error) {
	dep, ok := s.deps.Departments.Lookup(department)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDepartment, department)
	}
	if err := s.validate(form); err != nil {
		return nil, err
	}

	var stored []StoredAttachment
	if len(form.Files) > 0 {
		var err error
		stored, err = s.deps.Attachments.SaveAll(form.Files)
		if err != nil {
			return nil, err
		}
	}

	entry := entity.LogEntry{
		TagName:           form.TagName,
		Description:       form.Description,
		ReportedBy:        form.ReportedBy,
		OriginalFilenames: make([]string, 0, len(stored)),
		StoredFilenames:   make([]string, 0, len(stored)),
	}
	for _, a := range stored {
		entry.OriginalFilenames = append(entry.OriginalFilenames, a.OriginalName)
		entry.StoredFilenames = append(entry.StoredFilenames, a.StoredName)
	}

	saved, err := s.deps.Store.Create(entry)
	if err != nil {
		// not saved: nothing may point at these files
		s.deps.Attachments.remove(stored)
		return nil, fmt.Errorf("database save failed: %w", err)
	}
	s.deps.Changes.NotifyChange(ChangeCreated, saved.ID)
	log.Printf("✅ %s saved for %s (%d attachment(s))", saved.FormattedID(), dep.Name, saved.AttachmentCount)

	res := &SubmitResult{Entry: saved, Department: dep.Name, Outcome: OutcomeSavedNotNotified}
	note := &entity.Notification{
		LogID:       saved.ID,
		FormattedID: saved.FormattedID(),
		Department:  dep.Name,
		AttemptedAt: s.now(),
	}
	defer s.record(note)

	recipients, err := s.deps.Recipients.Load(dep.RecipientsFile)
	if err != nil {
		res.Message = fmt.Sprintf("Report saved (ID: %s), recipient file error (%s): %v", saved.FormattedID(), dep.RecipientsFile, err)
		note.Outcome, note.Detail = entity.NotificationSkipped, err.Error()
		return res, nil
	}
	if len(recipients) == 0 {
		res.Message = fmt.Sprintf("Report saved (ID: %s), but NO RECIPIENTS FOUND in %s. Email not sent.", saved.FormattedID(), dep.RecipientsFile)
		note.Outcome, note.Detail = entity.NotificationSkipped, "no recipients"
		return res, nil
	}
	note.RecipientCount = len(recipients)

	attached, err := s.deps.Mailer.Send(ctx, Mail{
		ReportID:    saved.FormattedID(),
		Recipients:  recipients,
		Note:        BuildNote(saved),
		Attachments: stored,
	})
	if err != nil {
		res.Message = fmt.Sprintf("PARTIAL SUCCESS: report saved with ID %s (status sent). Email status: %s (data safely stored locally)", saved.FormattedID(), mailFailure(err))
		note.Outcome, note.Detail = entity.NotificationFailed, err.Error()
		return res, nil
	}

	res.Outcome = OutcomeNotified
	res.Attached = attached
	names := "None"
	if len(attached) > 0 {
		names = strings.Join(attached, ", ")
	}
	res.Message = fmt.Sprintf("SUCCESS! Report saved with ID %s (status sent). Email sent to %d recipient(s)! Attached: %s", saved.FormattedID(), len(recipients), names)
	note.Outcome = entity.NotificationSent
	note.Attached = strings.Join(attached, ", ")
	return res, nil
}

func (s *SubmissionService) record(n *entity.Notification) {
	if s.deps.History == nil {
		return
	}
	if err := s.deps.History.Create(n); err != nil {
		log.Printf("⚠️ notification history write failed for %s: %v", n.FormattedID, err)
	}
}

func mailFailure(err error) string {
	switch {
	case errors.Is(err, ErrMailNotConfigured):
		return "EMAIL NOT CONFIGURED: missing app password"
	case errors.Is(err, ErrMailAuth):
		return "EMAIL AUTH FAILED: invalid app password, contact administrator"
	}
	msg := []rune(err.Error())
	if len(msg) > mailErrorLimit {
		msg = msg[:mailErrorLimit]
	}
	return "Email failed: " + string(msg)
}
