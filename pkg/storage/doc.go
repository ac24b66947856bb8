// Package storage persists the gallery outputs.
//
// The Manager type handles:
//   - Creating output directories on demand
//   - Atomic file replacement using a temporary file and rename
//   - Encoding and decoding the media record JSON file
//
// Usage:
//
//	manager := storage.NewManager(log)
//	if err := manager.SaveRecords("ig/posts.json", records); err != nil {
//	    return err
//	}
//
//	records, err := manager.LoadRecords("ig/posts.json")
package storage
