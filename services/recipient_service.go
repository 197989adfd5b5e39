package services

import (
	"fmt"

	"github.com/fabiomatricardi/cm-log-system/configs"
	"github.com/fabiomatricardi/cm-log-system/repository"
)

// RecipientService edits the per-department recipient files.
type RecipientService struct {
	repo        *repository.RecipientRepository
	departments configs.Departments
}

func NewRecipientService(repo *repository.RecipientRepository, departments configs.Departments) *RecipientService {
	return &RecipientService{repo: repo, departments: departments}
}

type RecipientList struct {
	Department string   `json:"department"`
	File       string   `json:"file"`
	Content    string   `json:"content"`
	Valid      []string `json:"valid"`
}

func (s *RecipientService) department(key string) (configs.Department, error) {
	dep, ok := s.departments.Lookup(key)
	if !ok {
		return configs.Department{}, fmt.Errorf("%w: %q", ErrUnknownDepartment, key)
	}
	return dep, nil
}

func (s *RecipientService) Get(key string) (*RecipientList, error) {
	dep, err := s.department(key)
	if err != nil {
		return nil, err
	}
	content, err := s.repo.Raw(dep.RecipientsFile)
	if err != nil {
		return nil, err
	}
	return &RecipientList{
		Department: dep.Name,
		File:       dep.RecipientsFile,
		Content:    content,
		Valid:      repository.ParseRecipients(content),
	}, nil
}

// Save stores the content and describes the result. A list without a single
// usable address is still saved, with a warning.
func (s *RecipientService) Save(key, content string) (*RecipientList, string, error) {
	dep, err := s.department(key)
	if err != nil {
		return nil, "", err
	}
	n, err := s.repo.Save(dep.RecipientsFile, content)
	if err != nil {
		return nil, "", err
	}
	msg := fmt.Sprintf("Successfully saved %d recipient(s) to %s", n, dep.RecipientsFile)
	if n == 0 {
		msg = fmt.Sprintf("Warning: no valid emails found in %s. File saved but nobody will receive notifications.", dep.RecipientsFile)
	}
	return &RecipientList{
		Department: dep.Name,
		File:       dep.RecipientsFile,
		Content:    content,
		Valid:      repository.ParseRecipients(content),
	}, msg, nil
}
