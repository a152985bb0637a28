package artifacts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// StorageConfig controls how artifacts are written
type StorageConfig struct {
	DirPerm  os.FileMode
	FilePerm os.FileMode
	Indent   string
}

// DefaultStorageConfig returns the standard artifact settings
func DefaultStorageConfig() *StorageConfig {
	return &StorageConfig{
		DirPerm:  0o755,
		FilePerm: 0o644,
		Indent:   "  ",
	}
}

// LocalFileStorage writes run artifacts to the local filesystem
type LocalFileStorage struct {
	config *StorageConfig
}

// NewLocalFileStorage creates a new local file storage instance
func NewLocalFileStorage(config *StorageConfig) *LocalFileStorage {
	if config == nil {
		config = DefaultStorageConfig()
	}
	return &LocalFileStorage{config: config}
}

// EnsureDir creates dir and its parents
func (s *LocalFileStorage) EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, s.config.DirPerm); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// WriteJSON encodes v with indentation and writes it to path. Non-ASCII and
// HTML characters are written as-is.
func (s *LocalFileStorage) WriteJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", s.config.Indent)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return s.write(path, bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}

// WriteText writes text to path verbatim
func (s *LocalFileStorage) WriteText(path, text string) error {
	return s.write(path, []byte(text))
}

// WriteBytes writes data to path verbatim
func (s *LocalFileStorage) WriteBytes(path string, data []byte) error {
	return s.write(path, data)
}

// write replaces path through a temp file in the same directory
func (s *LocalFileStorage) write(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := s.EnsureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName) // Clean up on failure
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, s.config.FilePerm); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}
