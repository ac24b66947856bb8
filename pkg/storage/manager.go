package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"iggallery/pkg/errors"
	"iggallery/pkg/logger"
	"iggallery/pkg/models"
)

// filePerm is applied to every file the manager writes
const filePerm = 0644

// Manager writes the gallery outputs. Every write replaces the destination
// atomically: readers see either the old file or the new one.
type Manager struct {
	logger logger.Logger
}

// NewManager creates a new storage manager
func NewManager(log logger.Logger) *Manager {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Manager{logger: log}
}

// EnsureDir creates dir and any missing parents. An existing directory is
// left alone.
func (m *Manager) EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &errors.Error{
			Type:    errors.ErrorTypeFilesystem,
			Message: fmt.Sprintf("failed to create directory %s", dir),
			Err:     err,
		}
	}
	return nil
}

// WriteFileAtomic writes data to a temporary file next to path and renames
// it over path
func (m *Manager) WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := m.EnsureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fsError("failed to create temporary file", path, err)
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	closeErr := tmp.Close()

	if err != nil {
		os.Remove(tmpName)
		return fsError("failed to write temporary file", path, err)
	}
	if closeErr != nil {
		os.Remove(tmpName)
		return fsError("failed to close temporary file", path, closeErr)
	}

	if err := os.Chmod(tmpName, filePerm); err != nil {
		os.Remove(tmpName)
		return fsError("failed to set file permissions", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fsError("failed to replace file", path, err)
	}

	m.logger.DebugWithFields("file written", map[string]interface{}{
		"path":  path,
		"bytes": len(data),
	})

	return nil
}

// EncodeRecords renders records as a two-space indented JSON array with a
// trailing newline. Non-ASCII and HTML characters are kept literal.
func EncodeRecords(records []models.MediaRecord) ([]byte, error) {
	if records == nil {
		records = []models.MediaRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, &errors.Error{
			Type:    errors.ErrorTypeParsing,
			Message: "failed to encode records",
			Err:     err,
		}
	}
	return unescapeLineSeparators(buf.Bytes()), nil
}

// unescapeLineSeparators turns the \u2028 and \u2029 escapes that
// encoding/json always emits back into literal characters. Every backslash
// in encoder output starts an escape, so escapes are skipped pairwise.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' || i+1 >= len(data) {
			out = append(out, data[i])
			continue
		}
		if rest := data[i+1:]; len(rest) >= 5 && (bytes.HasPrefix(rest, []byte("u2028")) || bytes.HasPrefix(rest, []byte("u2029"))) {
			if rest[4] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			continue
		}
		out = append(out, data[i], data[i+1])
		i++
	}
	return out
}

// SaveRecords persists records as JSON at path, creating the parent
// directory when needed
func (m *Manager) SaveRecords(path string, records []models.MediaRecord) error {
	data, err := EncodeRecords(records)
	if err != nil {
		return err
	}

	if err := m.WriteFileAtomic(path, data); err != nil {
		return err
	}

	m.logger.InfoWithFields("records saved", map[string]interface{}{
		"path":    path,
		"records": len(records),
	})
	return nil
}

// LoadRecords reads a record file written by SaveRecords
func (m *Manager) LoadRecords(path string) ([]models.MediaRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fsError("failed to read records", path, err)
	}

	var records []models.MediaRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &errors.Error{
			Type:    errors.ErrorTypeParsing,
			Message: fmt.Sprintf("failed to decode records from %s", path),
			Err:     err,
		}
	}
	if records == nil {
		records = []models.MediaRecord{}
	}

	m.logger.DebugWithFields("records loaded", map[string]interface{}{
		"path":    path,
		"records": len(records),
	})
	return records, nil
}

func fsError(message, path string, err error) error {
	return &errors.Error{
		Type:    errors.ErrorTypeFilesystem,
		Message: fmt.Sprintf("%s: %s", message, path),
		Err:     err,
	}
}
