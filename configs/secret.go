package configs

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// LoadSecret reads the mail app password from a {"secret_code": "..."} file.
func LoadSecret(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var s struct {
		SecretCode string `json:"secret_code"`
	}
	if err := json.Unmarshal(b, &s); err != nil {
		return "", fmt.Errorf("parse %s: %w", path, err)
	}
	if strings.TrimSpace(s.SecretCode) == "" {
		return "", fmt.Errorf("%s: secret_code is empty", path)
	}
	return s.SecretCode, nil
}
