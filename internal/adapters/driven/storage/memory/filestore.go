// Package memory provides an in-memory implementation of the file
// store port, with the same version-token semantics as the GitHub
// adapter. Used by services and tests.
package memory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/sitecheck-cli/internal/core/domain"
	"github.com/custodia-labs/sitecheck-cli/internal/core/ports/driven"
)

// Ensure FileStore implements the interface.
var _ driven.FileStore = (*FileStore)(nil)

type file struct {
	data []byte
	sha  string
}

// FileStore is an in-memory implementation of driven.FileStore.
// Version tokens are content hashes, so conditional updates conflict
// exactly when the stored content changed since the caller's read.
type FileStore struct {
	mu    sync.RWMutex
	files map[string]file
}

// NewFileStore creates an empty in-memory file store.
func NewFileStore() *FileStore {
	return &FileStore{files: make(map[string]file)}
}

// Get fetches the current content and version token for path.
func (s *FileStore) Get(_ context.Context, p string) (*driven.FileContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.files[p]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", p, domain.ErrFileNotFound)
	}

	data := make([]byte, len(f.data))
	copy(data, f.data)
	return &driven.FileContent{Data: data, SHA: f.sha}, nil
}

// Create writes a new file at path.
func (s *FileStore) Create(_ context.Context, p string, data []byte, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[p]; ok {
		return fmt.Errorf("create %s: %w", p, domain.ErrAlreadyExists)
	}
	s.files[p] = newFile(data)
	return nil
}

// Update replaces the file at path, conditional on sha.
func (s *FileStore) Update(_ context.Context, p string, data []byte, _, sha string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.files[p]
	if !ok {
		return fmt.Errorf("update %s: %w", p, domain.ErrFileNotFound)
	}
	if f.sha != sha {
		return fmt.Errorf("update %s: %w", p, domain.ErrConflict)
	}
	s.files[p] = newFile(data)
	return nil
}

// Delete removes the file at path, conditional on sha.
func (s *FileStore) Delete(_ context.Context, p, _, sha string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.files[p]
	if !ok {
		return fmt.Errorf("delete %s: %w", p, domain.ErrFileNotFound)
	}
	if f.sha != sha {
		return fmt.Errorf("delete %s: %w", p, domain.ErrConflict)
	}
	delete(s.files, p)
	return nil
}

// ListDirectory returns the entries directly under path. A directory
// with no entries does not exist, matching the contents API.
func (s *FileStore) ListDirectory(_ context.Context, dir string) ([]driven.FileEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := strings.TrimSuffix(dir, "/") + "/"
	var entries []driven.FileEntry
	for p, f := range s.files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		if strings.Contains(strings.TrimPrefix(p, prefix), "/") {
			continue
		}
		entries = append(entries, driven.FileEntry{
			Path: p,
			Name: path.Base(p),
			SHA:  f.sha,
			Size: len(f.data),
		})
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("list %s: %w", dir, domain.ErrFileNotFound)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// Len returns the number of stored files.
func (s *FileStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

func newFile(data []byte) file {
	stored := make([]byte, len(data))
	copy(stored, data)
	sum := sha256.Sum256(stored)
	return file{data: stored, sha: hex.EncodeToString(sum[:])}
}
