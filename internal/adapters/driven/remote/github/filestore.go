package github

import (
	"context"
	"fmt"
	"strings"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/sitecheck-cli/internal/core/domain"
	"github.com/custodia-labs/sitecheck-cli/internal/core/ports/driven"
)

// Ensure FileStore implements the interface.
var _ driven.FileStore = (*FileStore)(nil)

// FileStore stores files in a single GitHub repository via the
// contents API. Each write is one commit on the configured branch; a
// file's blob SHA is the version token for conditional writes.
type FileStore struct {
	client *Client
	owner  string
	repo   string
	branch string
}

// NewFileStore creates a file store for the repository given as
// "owner/name". An empty branch uses the repository default.
func NewFileStore(client *Client, repository, branch string) (*FileStore, error) {
	owner, name, ok := strings.Cut(repository, "/")
	if ok {
		owner = strings.TrimSpace(owner)
		name = strings.TrimSpace(name)
	}
	if !ok || owner == "" || name == "" {
		return nil, fmt.Errorf("%w: repository must be \"owner/name\", got %q", domain.ErrInvalidInput, repository)
	}

	return &FileStore{
		client: client,
		owner:  owner,
		repo:   name,
		branch: branch,
	}, nil
}

// Get fetches the current content and blob SHA for path.
func (s *FileStore) Get(ctx context.Context, path string) (*driven.FileContent, error) {
	if err := s.client.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.RepositoryContentGetOptions{Ref: s.branch}
	content, _, resp, err := s.client.gh.Repositories.GetContents(ctx, s.owner, s.repo, path, opts)
	if err != nil {
		return nil, s.toDomain(err, "get "+path)
	}
	s.client.updateRateLimitFromResponse(resp)

	if content == nil {
		return nil, fmt.Errorf("get %s: path is a directory", path)
	}

	decoded, err := content.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return &driven.FileContent{
		Data: []byte(decoded),
		SHA:  content.GetSHA(),
	}, nil
}

// Create writes a new file at path.
func (s *FileStore) Create(ctx context.Context, path string, data []byte, message string) error {
	if err := s.client.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.RepositoryContentFileOptions{
		Message: gh.Ptr(message),
		Content: data,
	}
	if s.branch != "" {
		opts.Branch = gh.Ptr(s.branch)
	}

	_, resp, err := s.client.gh.Repositories.CreateFile(ctx, s.owner, s.repo, path, opts)
	if err != nil {
		// Creating an occupied path fails with 422 ("sha wasn't supplied").
		wrapped := s.client.wrapError(err, "create "+path)
		if IsConflict(wrapped) {
			return fmt.Errorf("create %s: %w: %w", path, domain.ErrAlreadyExists, wrapped)
		}
		return s.toDomain(err, "create "+path)
	}
	s.client.updateRateLimitFromResponse(resp)
	return nil
}

// Update replaces the file at path, conditional on sha.
func (s *FileStore) Update(ctx context.Context, path string, data []byte, message, sha string) error {
	if err := s.client.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.RepositoryContentFileOptions{
		Message: gh.Ptr(message),
		Content: data,
		SHA:     gh.Ptr(sha),
	}
	if s.branch != "" {
		opts.Branch = gh.Ptr(s.branch)
	}

	_, resp, err := s.client.gh.Repositories.UpdateFile(ctx, s.owner, s.repo, path, opts)
	if err != nil {
		return s.toDomain(err, "update "+path)
	}
	s.client.updateRateLimitFromResponse(resp)
	return nil
}

// Delete removes the file at path, conditional on sha.
func (s *FileStore) Delete(ctx context.Context, path, message, sha string) error {
	if err := s.client.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.RepositoryContentFileOptions{
		Message: gh.Ptr(message),
		SHA:     gh.Ptr(sha),
	}
	if s.branch != "" {
		opts.Branch = gh.Ptr(s.branch)
	}

	_, resp, err := s.client.gh.Repositories.DeleteFile(ctx, s.owner, s.repo, path, opts)
	if err != nil {
		return s.toDomain(err, "delete "+path)
	}
	s.client.updateRateLimitFromResponse(resp)
	return nil
}

// ListDirectory returns the entries directly under path.
func (s *FileStore) ListDirectory(ctx context.Context, path string) ([]driven.FileEntry, error) {
	if err := s.client.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.RepositoryContentGetOptions{Ref: s.branch}
	_, listing, resp, err := s.client.gh.Repositories.GetContents(ctx, s.owner, s.repo, path, opts)
	if err != nil {
		return nil, s.toDomain(err, "list "+path)
	}
	s.client.updateRateLimitFromResponse(resp)

	entries := make([]driven.FileEntry, 0, len(listing))
	for _, item := range listing {
		if item.GetType() != "file" {
			continue
		}
		entries = append(entries, driven.FileEntry{
			Path: item.GetPath(),
			Name: item.GetName(),
			SHA:  item.GetSHA(),
			Size: item.GetSize(),
		})
	}
	return entries, nil
}

// toDomain translates a go-github error into the domain taxonomy,
// keeping the underlying APIError in the chain for diagnostics.
func (s *FileStore) toDomain(err error, operation string) error {
	wrapped := s.client.wrapError(err, operation)

	switch {
	case IsNotFound(wrapped):
		return fmt.Errorf("%s: %w: %w", operation, domain.ErrFileNotFound, wrapped)
	case IsConflict(wrapped):
		return fmt.Errorf("%s: %w: %w", operation, domain.ErrConflict, wrapped)
	case IsUnauthorized(wrapped):
		return fmt.Errorf("%s: %w: %w", operation, domain.ErrUnauthorized, wrapped)
	default:
		return wrapped
	}
}
