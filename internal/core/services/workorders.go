package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/sitecheck-cli/internal/core/domain"
	"github.com/custodia-labs/sitecheck-cli/internal/core/ports/driving"
	"github.com/custodia-labs/sitecheck-cli/internal/logger"
)

// Ensure WorkOrders implements the interface.
var _ driving.WorkOrderService = (*WorkOrders)(nil)

// WorkOrders is the repository for open and archived work orders.
type WorkOrders struct {
	docs    *Documents
	images  *Images
	session *Session
}

// NewWorkOrders creates a work order repository.
func NewWorkOrders(docs *Documents, images *Images, session *Session) *WorkOrders {
	return &WorkOrders{docs: docs, images: images, session: session}
}

// Create appends a work order. When image data is supplied the image is
// stored first and its path recorded on the order. The two saves are
// independent: an image failure is reported as a warning, the order is
// still created with an empty image path, and a record save failure
// after a successful image save leaves the image as an orphaned blob.
func (s *WorkOrders) Create(ctx context.Context, input domain.WorkOrder, image []byte) (domain.WorkOrder, error) {
	if len(image) > 0 {
		name := ""
		if input.ID != "" {
			name = input.ID + ImageSuffix
		}
		path, err := s.images.Save(ctx, image, name)
		if err != nil {
			logger.Warn("image not attached: %v", err)
			input.Image = ""
		} else {
			input.Image = path
		}
	}

	var stored domain.WorkOrder
	doc, err := s.docs.MutateWorkOrders(ctx, func(d *domain.WorkOrderDocument) error {
		rec := input
		if rec.ID == "" {
			rec.ID = domain.NextID(len(d.Records))
		}
		d.Records = append(d.Records, rec)
		stored = rec
		return nil
	})
	if err != nil {
		return domain.WorkOrder{}, err
	}

	s.session.setWorkOrders(doc)
	logger.Info("work order %s created", stored.ID)
	return stored, nil
}

// Update merges fields into the order with the given id.
func (s *WorkOrders) Update(ctx context.Context, id string, fields map[string]string) (domain.WorkOrder, error) {
	var stored domain.WorkOrder
	doc, err := s.docs.MutateWorkOrders(ctx, func(d *domain.WorkOrderDocument) error {
		for i := range d.Records {
			if d.Records[i].ID != id {
				continue
			}
			if err := d.Records[i].Apply(fields); err != nil {
				return err
			}
			stored = d.Records[i]
			return nil
		}
		return fmt.Errorf("work order %q: %w", id, domain.ErrRecordNotFound)
	})
	if err != nil {
		return domain.WorkOrder{}, err
	}

	s.session.setWorkOrders(doc)
	return stored, nil
}

// Complete archives the order with the given id into the completed
// document, stamping the actual repair date when supplied. The open
// order is left in place; there is no single-record delete operation.
func (s *WorkOrders) Complete(ctx context.Context, id, actualRepairDate string) (domain.CompletedWorkOrder, error) {
	orders, err := s.docs.LoadWorkOrders(ctx)
	if err != nil {
		return domain.CompletedWorkOrder{}, err
	}
	s.session.setWorkOrders(orders)

	var order *domain.WorkOrder
	for i := range orders.Records {
		if orders.Records[i].ID == id {
			order = &orders.Records[i]
			break
		}
	}
	if order == nil {
		return domain.CompletedWorkOrder{}, fmt.Errorf("work order %q: %w", id, domain.ErrRecordNotFound)
	}

	archived := domain.CompleteWorkOrder(*order)
	if actualRepairDate != "" {
		archived.ActualRepairDate = actualRepairDate
	}

	doc, err := s.docs.MutateCompletedOrders(ctx, func(d *domain.CompletedOrderDocument) error {
		d.Completed = append(d.Completed, archived)
		return nil
	})
	if err != nil {
		return domain.CompletedWorkOrder{}, err
	}

	s.session.setCompletedOrders(doc)
	logger.Info("work order %s archived", id)
	return archived, nil
}

// List returns the open work orders and refreshes the session snapshot.
func (s *WorkOrders) List(ctx context.Context) ([]domain.WorkOrder, error) {
	doc, err := s.docs.LoadWorkOrders(ctx)
	if err != nil {
		return nil, err
	}
	s.session.setWorkOrders(doc)
	return doc.Records, nil
}

// ListCompleted returns the archived work orders.
func (s *WorkOrders) ListCompleted(ctx context.Context) ([]domain.CompletedWorkOrder, error) {
	doc, err := s.docs.LoadCompletedOrders(ctx)
	if err != nil {
		return nil, err
	}
	s.session.setCompletedOrders(doc)
	return doc.Completed, nil
}

// Clear resets the work order document to its default empty collection.
// Stored images are untouched; only the checklist clear sweeps those.
func (s *WorkOrders) Clear(ctx context.Context) error {
	if err := s.docs.Clear(ctx, domain.KindWorkOrders); err != nil {
		return err
	}
	s.session.setWorkOrders(domain.NewWorkOrderDocument())
	return nil
}
