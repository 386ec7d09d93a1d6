package storage

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Settings is a JSON settings document with dotted-path access. Reads and
// writes operate on the raw document, so unknown keys written by the host
// or the user survive untouched.
type Settings struct {
	path  string
	raw   []byte
	dirty bool
}

// OpenSettings opens the settings document at path. A missing file opens
// as an empty document.
func OpenSettings(path string) (*Settings, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Settings{path: path, raw: []byte("{}")}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("settings file %s is not valid JSON", path)
	}
	return &Settings{path: path, raw: raw}, nil
}

// Get returns the string value at the dotted path, or "" when absent.
func (s *Settings) Get(path string) string {
	return gjson.GetBytes(s.raw, path).String()
}

// GetBool returns the boolean value at the dotted path. Absent paths
// report false.
func (s *Settings) GetBool(path string) bool {
	return gjson.GetBytes(s.raw, path).Bool()
}

// GetInt returns the integer value at the dotted path, or 0 when absent.
func (s *Settings) GetInt(path string) int64 {
	return gjson.GetBytes(s.raw, path).Int()
}

// Exists reports whether the dotted path is present in the document.
func (s *Settings) Exists(path string) bool {
	return gjson.GetBytes(s.raw, path).Exists()
}

// Set writes value at the dotted path, creating intermediate objects.
func (s *Settings) Set(path string, value any) error {
	raw, err := sjson.SetBytes(s.raw, path, value)
	if err != nil {
		return fmt.Errorf("failed to set setting %s: %w", path, err)
	}
	s.raw = raw
	s.dirty = true
	return nil
}

// Flush writes the document to disk through a temp file and rename.
func (s *Settings) Flush() error {
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, s.raw, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace settings file: %w", err)
	}

	s.dirty = false
	return nil
}

// Close flushes the document if it has unsaved changes.
func (s *Settings) Close() error {
	if s.dirty {
		return s.Flush()
	}
	return nil
}
