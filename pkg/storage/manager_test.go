package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"iggallery/pkg/errors"
	"iggallery/pkg/logger"
	"iggallery/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []models.MediaRecord {
	return []models.MediaRecord{
		{
			ID:         "1",
			Caption:    "Hello <b>world</b> & \"friends\" — café",
			MediaType:  "IMAGE",
			MediaURL:   "http://x/a.jpg",
			Permalink:  "http://ig/p/1",
			Timestamp:  "2024-05-01T10:00:00+0000",
			DisplayURL: "http://x/a.jpg",
		},
		{
			ID:           "2",
			MediaType:    "VIDEO",
			ThumbnailURL: "http://x/thumb.jpg",
			Permalink:    "http://ig/p/2",
			Timestamp:    "2024-05-02T10:00:00+0000",
			DisplayURL:   "http://x/thumb.jpg",
		},
	}
}

func TestSaveAndLoadRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ig", "posts.json")
	m := NewManager(logger.NewNopLogger())

	require.NoError(t, m.SaveRecords(path, sampleRecords()))

	loaded, err := m.LoadRecords(path)
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), loaded)
}

func TestSaveRecordsFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.json")
	m := NewManager(logger.NewNopLogger())

	require.NoError(t, m.SaveRecords(path, sampleRecords()[:1]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, "[\n  {\n    \"id\": \"1\",\n"))
	assert.True(t, strings.HasSuffix(out, "]\n"))
	assert.Contains(t, out, `"caption": "Hello <b>world</b> & \"friends\" — café"`)
	assert.NotContains(t, out, `\u003c`)
	assert.NotContains(t, out, `\u0026`)
	assert.Contains(t, out, `"display_url": "http://x/a.jpg"`)
}

func TestEncodeRecordsLineSeparators(t *testing.T) {
	records := []models.MediaRecord{{
		ID:        "1",
		Caption:   "a\u2028b é 🙂 <&> c\u2029d " + `\u2028 stays text`,
		MediaType: "IMAGE",
	}}

	data, err := EncodeRecords(records)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "a\u2028b é 🙂 <&> c\u2029d")
	assert.Contains(t, out, `\\u2028 stays text`)
	assert.NotContains(t, out, `"a\u2028`)

	var decoded []models.MediaRecord
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, records[0].Caption, decoded[0].Caption)
}

func TestSaveRecordsIsDeterministic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.json")
	m := NewManager(logger.NewNopLogger())

	require.NoError(t, m.SaveRecords(path, sampleRecords()))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, m.SaveRecords(path, sampleRecords()))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSaveRecordsEmpty(t *testing.T) {
	tests := []struct {
		name    string
		records []models.MediaRecord
	}{
		{"nil", nil},
		{"empty", []models.MediaRecord{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "posts.json")
			m := NewManager(logger.NewNopLogger())

			require.NoError(t, m.SaveRecords(path, tt.records))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "[]\n", string(data))

			loaded, err := m.LoadRecords(path)
			require.NoError(t, err)
			assert.NotNil(t, loaded)
			assert.Empty(t, loaded)
		})
	}
}

func TestSaveRecordsKeepsEmptyDisplayURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.json")
	m := NewManager(logger.NewNopLogger())

	rec := models.MediaRecord{ID: "3", MediaType: "CAROUSEL_ALBUM", Permalink: "p", Timestamp: "t"}
	rec.Normalize()
	require.NoError(t, m.SaveRecords(path, []models.MediaRecord{rec}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"display_url": ""`)
	assert.NotContains(t, string(data), "media_url")
}

func TestWriteFileAtomicReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	m := NewManager(logger.NewNopLogger())
	require.NoError(t, m.WriteFileAtomic(path, []byte("new")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(filePerm), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestEnsureDir(t *testing.T) {
	m := NewManager(logger.NewNopLogger())
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	require.NoError(t, m.EnsureDir(dir))
	require.NoError(t, m.EnsureDir(dir))
	require.NoError(t, m.EnsureDir(""))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSaveRecordsDirectoryIsAFile(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "ig")
	require.NoError(t, os.WriteFile(blocker, []byte("not a dir"), 0644))

	m := NewManager(logger.NewNopLogger())
	err := m.SaveRecords(filepath.Join(blocker, "posts.json"), sampleRecords())

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeFilesystem))
}

func TestSaveRecordsTargetIsADirectory(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "posts.json")
	require.NoError(t, os.Mkdir(target, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "keep"), []byte("x"), 0644))

	m := NewManager(logger.NewNopLogger())
	err := m.SaveRecords(target, sampleRecords())

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeFilesystem))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestLoadRecordsErrors(t *testing.T) {
	m := NewManager(logger.NewNopLogger())
	dir := t.TempDir()

	_, err := m.LoadRecords(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeFilesystem))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0644))
	_, err = m.LoadRecords(bad)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeParsing))
}
