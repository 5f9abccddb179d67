package driven

import "context"

// FileContent is the current state of a remote file.
type FileContent struct {
	// Data is the decoded file body.
	Data []byte

	// SHA is the opaque version token of the current content revision.
	// It authorises conditional updates and deletes.
	SHA string
}

// FileEntry describes one file within a remote directory listing.
type FileEntry struct {
	// Path is the full repository path of the entry.
	Path string

	// Name is the base name of the entry.
	Name string

	// SHA is the entry's current version token.
	SHA string

	// Size is the content size in bytes.
	Size int
}

// FileStore is the remote versioned file backend holding the JSON
// documents and image blobs. Backed by the GitHub contents API in
// production and an in-memory store in tests.
//
// Error contract: Get returns domain.ErrFileNotFound for absent paths,
// Create returns domain.ErrAlreadyExists for occupied paths, and
// Update/Delete return domain.ErrConflict when the supplied version
// token is stale.
type FileStore interface {
	// Get fetches the current content and version token for path.
	Get(ctx context.Context, path string) (*FileContent, error)

	// Create writes a new file at path with a commit message.
	Create(ctx context.Context, path string, data []byte, message string) error

	// Update replaces the file at path, conditional on sha matching the
	// current revision.
	Update(ctx context.Context, path string, data []byte, message, sha string) error

	// Delete removes the file at path, conditional on sha.
	Delete(ctx context.Context, path, message, sha string) error

	// ListDirectory returns the entries directly under path.
	ListDirectory(ctx context.Context, path string) ([]FileEntry, error)
}
