package repository

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// RecipientRepository reads and writes the per-department recipient files:
// one address per line, blank lines and lines starting with # ignored.
type RecipientRepository struct {
	mu sync.Mutex
}

func NewRecipientRepository() *RecipientRepository {
	return &RecipientRepository{}
}

// ParseRecipients extracts the usable addresses from file content.
func ParseRecipients(content string) []string {
	var out []string
	sc := bufio.NewScanner(strings.NewReader(content))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || !strings.Contains(line, "@") {
			continue
		}
		out = append(out, line)
	}
	return out
}

// Load returns the addresses in path. A missing file is an error the caller
// reports to the user; an empty list is not an error.
func (r *RecipientRepository) Load(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("recipient file '%s' not found. Create it with one email per line: %w", path, err)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading recipients from '%s': %w", path, err)
	}
	return ParseRecipients(string(b)), nil
}

// Raw returns the file content for editing, or a commented template when the
// file does not exist yet.
func (r *RecipientRepository) Raw(path string) (string, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		name := filepath.Base(path)
		return fmt.Sprintf("# %s\n# Add one email per line below\n# Lines starting with # are comments\n", name), nil
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Save writes content as-is and returns how many usable addresses it holds.
func (r *RecipientRepository) Save(path, content string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, err
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return 0, fmt.Errorf("save failed for %s: %w", path, err)
	}
	return len(ParseRecipients(content)), nil
}
