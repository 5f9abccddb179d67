package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/sitecheck-cli/internal/core/domain"
	"github.com/custodia-labs/sitecheck-cli/internal/core/ports/driving"
	"github.com/custodia-labs/sitecheck-cli/internal/logger"
)

// Ensure Checklist implements the interface.
var _ driving.ChecklistService = (*Checklist)(nil)

// Checklist is the repository for inspection checklist records.
type Checklist struct {
	docs    *Documents
	images  *Images
	session *Session
}

// NewChecklist creates a checklist repository.
func NewChecklist(docs *Documents, images *Images, session *Session) *Checklist {
	return &Checklist{docs: docs, images: images, session: session}
}

// Create appends a checklist record. A record arriving without an id is
// assigned the next sequential id for the collection.
func (s *Checklist) Create(ctx context.Context, input domain.ChecklistRecord) (domain.ChecklistRecord, error) {
	var stored domain.ChecklistRecord
	doc, err := s.docs.MutateChecklist(ctx, func(d *domain.ChecklistDocument) error {
		rec := input
		if rec.ID == "" {
			rec.ID = domain.NextID(len(d.Check))
		}
		d.Check = append(d.Check, rec)
		stored = rec
		return nil
	})
	if err != nil {
		return domain.ChecklistRecord{}, err
	}

	s.session.setChecklist(doc)
	logger.Info("checklist record %s created", stored.ID)
	return stored, nil
}

// Update merges fields into the record with the given id. When no
// record matches, the document is left untouched and
// domain.ErrRecordNotFound is returned.
func (s *Checklist) Update(ctx context.Context, id string, fields map[string]string) (domain.ChecklistRecord, error) {
	var stored domain.ChecklistRecord
	doc, err := s.docs.MutateChecklist(ctx, func(d *domain.ChecklistDocument) error {
		for i := range d.Check {
			if d.Check[i].ID != id {
				continue
			}
			if err := d.Check[i].Apply(fields); err != nil {
				return err
			}
			stored = d.Check[i]
			return nil
		}
		return fmt.Errorf("checklist record %q: %w", id, domain.ErrRecordNotFound)
	})
	if err != nil {
		return domain.ChecklistRecord{}, err
	}

	s.session.setChecklist(doc)
	return stored, nil
}

// List returns the current checklist collection and refreshes the
// session snapshot.
func (s *Checklist) List(ctx context.Context) ([]domain.ChecklistRecord, error) {
	doc, err := s.docs.LoadChecklist(ctx)
	if err != nil {
		return nil, err
	}
	s.session.setChecklist(doc)
	return doc.Check, nil
}

// Clear resets the checklist to its default empty collection and then
// sweeps every stored image. The sweep is best effort and runs after
// the document overwrite so a failed sweep never leaves cleared images
// referenced by surviving records.
func (s *Checklist) Clear(ctx context.Context) error {
	if err := s.docs.Clear(ctx, domain.KindChecklist); err != nil {
		return err
	}
	s.session.setChecklist(domain.NewChecklistDocument())

	if err := s.images.ClearAll(ctx); err != nil {
		return fmt.Errorf("clear images: %w", err)
	}
	return nil
}
