package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// URLPrefix is where the web client serves files written by LocalStorage.
const URLPrefix = "/uploads/"

type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

func (l *LocalStorage) Dir() string {
	return l.dir
}

func (l *LocalStorage) UploadImage(ctx context.Context, fileName string, file io.Reader, size int64) (string, string, error) {
	objectName := ObjectName(fileName)

	dst, err := os.OpenFile(filepath.Join(l.dir, objectName), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", "", fmt.Errorf("failed to create upload file: %w", err)
	}

	if _, err := io.Copy(dst, io.LimitReader(file, size)); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", "", fmt.Errorf("failed to write upload file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return objectName, URLPrefix + objectName, nil
}

func (l *LocalStorage) DeleteImage(ctx context.Context, objectName string) error {
	if objectName != filepath.Base(objectName) {
		return fmt.Errorf("invalid object name %q", objectName)
	}
	if err := os.Remove(filepath.Join(l.dir, objectName)); err != nil {
		return fmt.Errorf("failed to delete upload file: %w", err)
	}
	return nil
}

// ObjectName builds a random unique name that keeps the original extension.
func ObjectName(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return strings.ReplaceAll(uuid.New().String(), "-", "") + ext
}
