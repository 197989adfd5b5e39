package cli

import (
	"path/filepath"

	"github.com/fabiomatricardi/cm-log-system/configs"
	"github.com/fabiomatricardi/cm-log-system/repository"
)

func openStore(cfg *configs.Config) (*repository.LogStore, error) {
	return repository.NewLogStore(repository.LogStoreConfig{Path: cfg.LogDBFile})
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
