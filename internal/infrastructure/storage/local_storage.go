package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"uav-detector/internal/pkg/fileutils"
)

// LocalStorage keeps result artifacts on the local filesystem and references
// them by the /results serving route.
type LocalStorage struct {
	BasePath     string
	PublicPrefix string
}

func NewLocalStorage(basePath string) *LocalStorage {
	return &LocalStorage{BasePath: basePath, PublicPrefix: "/results"}
}

func (l *LocalStorage) Save(_ context.Context, sourcePath, name string) (string, error) {
	fullPath := filepath.Join(l.BasePath, name)

	if err := os.MkdirAll(l.BasePath, 0755); err != nil {
		return "", fmt.Errorf("could not create results dir: %w", err)
	}
	if err := fileutils.CopyFile(sourcePath, fullPath); err != nil {
		return "", fmt.Errorf("could not store artifact: %w", err)
	}

	return l.PublicPrefix + "/" + name, nil
}

func (l *LocalStorage) Exists(name string) bool {
	return fileutils.FileExists(filepath.Join(l.BasePath, name))
}

func (l *LocalStorage) Delete(name string) error {
	return os.Remove(filepath.Join(l.BasePath, name))
}
