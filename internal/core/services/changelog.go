package services

import (
	"context"

	"github.com/custodia-labs/sitecheck-cli/internal/core/domain"
	"github.com/custodia-labs/sitecheck-cli/internal/core/ports/driving"
	"github.com/custodia-labs/sitecheck-cli/internal/logger"
)

// Ensure ChangeLog implements the interface.
var _ driving.ChangeLogService = (*ChangeLog)(nil)

// ChangeLog is the repository for repair-date modification entries.
// Entries are append-only; ids are scoped to this document and are
// unrelated to the ids of the records whose changes they describe.
type ChangeLog struct {
	docs    *Documents
	session *Session
}

// NewChangeLog creates a change log repository.
func NewChangeLog(docs *Documents, session *Session) *ChangeLog {
	return &ChangeLog{docs: docs, session: session}
}

// Create appends a change log entry with the next sequential id.
func (s *ChangeLog) Create(ctx context.Context, input domain.ChangeLogEntry) (domain.ChangeLogEntry, error) {
	var stored domain.ChangeLogEntry
	doc, err := s.docs.MutateChangeLog(ctx, func(d *domain.ChangeLogDocument) error {
		entry := input
		if entry.ID == "" {
			entry.ID = domain.NextID(len(d.Logs))
		}
		d.Logs = append(d.Logs, entry)
		stored = entry
		return nil
	})
	if err != nil {
		return domain.ChangeLogEntry{}, err
	}

	s.session.setChangeLog(doc)
	logger.Info("change log entry %s created", stored.ID)
	return stored, nil
}

// List returns the change log entries and refreshes the session snapshot.
func (s *ChangeLog) List(ctx context.Context) ([]domain.ChangeLogEntry, error) {
	doc, err := s.docs.LoadChangeLog(ctx)
	if err != nil {
		return nil, err
	}
	s.session.setChangeLog(doc)
	return doc.Logs, nil
}

// Clear resets the change log document to its default empty collection.
func (s *ChangeLog) Clear(ctx context.Context) error {
	if err := s.docs.Clear(ctx, domain.KindChangeLog); err != nil {
		return err
	}
	s.session.setChangeLog(domain.NewChangeLogDocument())
	return nil
}
