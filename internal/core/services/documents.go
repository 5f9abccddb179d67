package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/sitecheck-cli/internal/core/domain"
	"github.com/custodia-labs/sitecheck-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sitecheck-cli/internal/logger"
)

// maxWriteAttempts bounds the load-mutate-save retry loop. A conflict
// means another writer updated the document between our read and write;
// the mutation is re-applied to the fresh state.
const maxWriteAttempts = 3

// Documents is the adapter between typed document containers and the
// remote file store. Every load absorbs not-found and decode failures
// into the default empty shape; every write is a conditional update
// keyed on the version token captured at read time.
type Documents struct {
	files driven.FileStore
}

// NewDocuments creates a document adapter over the given file store.
func NewDocuments(files driven.FileStore) *Documents {
	return &Documents{files: files}
}

// normalisable is implemented by the document containers to restore
// their non-nil collection invariant after decoding.
type normalisable interface {
	Normalise()
}

// loadDocument fetches and decodes the document for kind. A missing
// file or an unparsable body yields the default shape; the returned sha
// is empty only when the file does not exist remotely.
func loadDocument[D any](
	ctx context.Context, files driven.FileStore, kind domain.DocumentKind, fresh func() *D,
) (*D, string, error) {
	if !kind.Valid() {
		return nil, "", fmt.Errorf("%w: %q", domain.ErrUnsupportedDocument, kind)
	}

	content, err := files.Get(ctx, kind.Path())
	if err != nil {
		if errors.Is(err, domain.ErrFileNotFound) {
			logger.Debug("document %s absent, using default shape", kind)
			return fresh(), "", nil
		}
		return nil, "", fmt.Errorf("load %s: %w", kind, err)
	}

	doc := fresh()
	if err := json.Unmarshal(content.Data, doc); err != nil {
		// A corrupt document is recovered the same way as a missing
		// one; the sha is kept so the next save replaces it in place.
		logger.Warn("document %s is unparsable, using default shape: %v", kind, err)
		return fresh(), content.SHA, nil
	}
	if n, ok := any(doc).(normalisable); ok {
		n.Normalise()
	}

	return doc, content.SHA, nil
}

// writeDocument serialises doc as pretty JSON and writes it: a create
// when sha is empty, a conditional update otherwise. The 2-space indent
// keeps diffs readable in the backing version history.
func writeDocument[D any](
	ctx context.Context, files driven.FileStore, kind domain.DocumentKind, doc *D, sha string,
) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", kind, err)
	}

	path := kind.Path()
	if sha == "" {
		return files.Create(ctx, path, data, "Create "+path)
	}
	return files.Update(ctx, path, data, "Update "+path, sha)
}

// mutateDocument runs the load-mutate-save cycle for kind, retrying on
// version conflicts with the mutation re-applied to freshly loaded
// state. The mutation must be idempotent with respect to its input
// document; it is invoked once per attempt.
func mutateDocument[D any](
	ctx context.Context,
	files driven.FileStore,
	kind domain.DocumentKind,
	fresh func() *D,
	mutate func(*D) error,
) (*D, error) {
	var lastErr error
	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		doc, sha, err := loadDocument(ctx, files, kind, fresh)
		if err != nil {
			return nil, err
		}

		if err := mutate(doc); err != nil {
			return nil, err
		}

		err = writeDocument(ctx, files, kind, doc, sha)
		if err == nil {
			return doc, nil
		}
		if !errors.Is(err, domain.ErrConflict) && !errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("save %s: %w", kind, err)
		}

		// Another writer got there first. Reload and reapply.
		lastErr = err
		logger.Warn("save %s: concurrent modification, retrying (%d/%d)", kind, attempt, maxWriteAttempts)
	}
	return nil, fmt.Errorf("save %s: retries exhausted: %w", kind, lastErr)
}

// upsertFile writes raw bytes at path, creating or conditionally
// updating depending on whether the path currently exists. Shared by
// the image store.
func upsertFile(ctx context.Context, files driven.FileStore, path string, data []byte) error {
	var lastErr error
	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		sha := ""
		content, err := files.Get(ctx, path)
		switch {
		case err == nil:
			sha = content.SHA
		case errors.Is(err, domain.ErrFileNotFound):
			// First write for this path.
		default:
			return fmt.Errorf("check %s: %w", path, err)
		}

		if sha == "" {
			err = files.Create(ctx, path, data, "Create "+path)
		} else {
			err = files.Update(ctx, path, data, "Update "+path, sha)
		}
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrConflict) && !errors.Is(err, domain.ErrAlreadyExists) {
			return fmt.Errorf("write %s: %w", path, err)
		}
		lastErr = err
	}
	return fmt.Errorf("write %s: retries exhausted: %w", path, lastErr)
}

// LoadChecklist returns the current checklist document.
func (s *Documents) LoadChecklist(ctx context.Context) (*domain.ChecklistDocument, error) {
	doc, _, err := loadDocument(ctx, s.files, domain.KindChecklist, domain.NewChecklistDocument)
	return doc, err
}

// LoadWorkOrders returns the current work order document.
func (s *Documents) LoadWorkOrders(ctx context.Context) (*domain.WorkOrderDocument, error) {
	doc, _, err := loadDocument(ctx, s.files, domain.KindWorkOrders, domain.NewWorkOrderDocument)
	return doc, err
}

// LoadCompletedOrders returns the current completed order document.
func (s *Documents) LoadCompletedOrders(ctx context.Context) (*domain.CompletedOrderDocument, error) {
	doc, _, err := loadDocument(ctx, s.files, domain.KindCompletedOrders, domain.NewCompletedOrderDocument)
	return doc, err
}

// LoadChangeLog returns the current change log document.
func (s *Documents) LoadChangeLog(ctx context.Context) (*domain.ChangeLogDocument, error) {
	doc, _, err := loadDocument(ctx, s.files, domain.KindChangeLog, domain.NewChangeLogDocument)
	return doc, err
}

// MutateChecklist applies mutate to the checklist document and persists
// the result, retrying on conflicts.
func (s *Documents) MutateChecklist(
	ctx context.Context, mutate func(*domain.ChecklistDocument) error,
) (*domain.ChecklistDocument, error) {
	return mutateDocument(ctx, s.files, domain.KindChecklist, domain.NewChecklistDocument, mutate)
}

// MutateWorkOrders applies mutate to the work order document.
func (s *Documents) MutateWorkOrders(
	ctx context.Context, mutate func(*domain.WorkOrderDocument) error,
) (*domain.WorkOrderDocument, error) {
	return mutateDocument(ctx, s.files, domain.KindWorkOrders, domain.NewWorkOrderDocument, mutate)
}

// MutateCompletedOrders applies mutate to the completed order document.
func (s *Documents) MutateCompletedOrders(
	ctx context.Context, mutate func(*domain.CompletedOrderDocument) error,
) (*domain.CompletedOrderDocument, error) {
	return mutateDocument(ctx, s.files, domain.KindCompletedOrders, domain.NewCompletedOrderDocument, mutate)
}

// MutateChangeLog applies mutate to the change log document.
func (s *Documents) MutateChangeLog(
	ctx context.Context, mutate func(*domain.ChangeLogDocument) error,
) (*domain.ChangeLogDocument, error) {
	return mutateDocument(ctx, s.files, domain.KindChangeLog, domain.NewChangeLogDocument, mutate)
}

// Clear overwrites the document of the given kind with its default
// empty collection. Unknown kinds are rejected explicitly.
func (s *Documents) Clear(ctx context.Context, kind domain.DocumentKind) error {
	var err error
	switch kind {
	case domain.KindChecklist:
		_, err = s.MutateChecklist(ctx, func(d *domain.ChecklistDocument) error {
			d.Check = []domain.ChecklistRecord{}
			return nil
		})
	case domain.KindWorkOrders:
		_, err = s.MutateWorkOrders(ctx, func(d *domain.WorkOrderDocument) error {
			d.Records = []domain.WorkOrder{}
			return nil
		})
	case domain.KindCompletedOrders:
		_, err = s.MutateCompletedOrders(ctx, func(d *domain.CompletedOrderDocument) error {
			d.Completed = []domain.CompletedWorkOrder{}
			return nil
		})
	case domain.KindChangeLog:
		_, err = s.MutateChangeLog(ctx, func(d *domain.ChangeLogDocument) error {
			d.Logs = []domain.ChangeLogEntry{}
			return nil
		})
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedDocument, kind)
	}
	return err
}
