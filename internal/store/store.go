// Package store persists analysis results as JSON files under a results
// directory. Serialization of the result aggregate lives here, outside the
// analysis core.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/docsense/docsense/internal/analyzer"
)

var docIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Store writes and reads result documents in a single directory.
type Store struct {
	dir string
}

// New creates the results directory if needed and returns a Store over it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create results dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Entry describes one stored result.
type Entry struct {
	DocID      string    `json:"doc_id"`
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Save writes the result for docID atomically (temp file + rename) and
// returns the final path.
func (s *Store) Save(docID string, result *analyzer.Result) (string, error) {
	if err := validDocID(docID); err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}

	final := filepath.Join(s.dir, docID+".json")
	tmp, err := os.CreateTemp(s.dir, docID+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write result: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), final); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("rename result: %w", err)
	}
	return final, nil
}

// Load reads the stored result for docID.
func (s *Store) Load(docID string) (*analyzer.Result, error) {
	if err := validDocID(docID); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, docID+".json"))
	if err != nil {
		return nil, fmt.Errorf("read result %s: %w", docID, err)
	}
	var result analyzer.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parse result %s: %w", docID, err)
	}
	return &result, nil
}

// List returns entries for all stored results, newest first.
func (s *Store) List() ([]Entry, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	entries := make([]Entry, 0, len(matches))
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			DocID:      strings.TrimSuffix(filepath.Base(path), ".json"),
			Path:       path,
			Size:       info.Size(),
			ModifiedAt: info.ModTime(),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ModifiedAt.After(entries[j].ModifiedAt)
	})
	return entries, nil
}

// Delete removes the stored result for docID.
func (s *Store) Delete(docID string) error {
	if err := validDocID(docID); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, docID+".json")); err != nil {
		return fmt.Errorf("delete result %s: %w", docID, err)
	}
	return nil
}

func validDocID(docID string) error {
	if !docIDRe.MatchString(docID) {
		return fmt.Errorf("invalid doc id %q", docID)
	}
	return nil
}
