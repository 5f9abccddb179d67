package driving

import (
	"context"

	"github.com/custodia-labs/sitecheck-cli/internal/core/domain"
)

// ChecklistService manages inspection checklist records.
type ChecklistService interface {
	// Create appends a checklist record, assigning a sequential id when
	// the input carries none, and returns the stored record.
	Create(ctx context.Context, input domain.ChecklistRecord) (domain.ChecklistRecord, error)

	// Update merges fields into the record with the given id.
	// Returns domain.ErrRecordNotFound when no record matches.
	Update(ctx context.Context, id string, fields map[string]string) (domain.ChecklistRecord, error)

	// List returns the current checklist collection.
	List(ctx context.Context) ([]domain.ChecklistRecord, error)

	// Clear resets the checklist document to its default empty shape
	// and sweeps every stored image.
	Clear(ctx context.Context) error
}

// WorkOrderService manages open and archived work orders.
type WorkOrderService interface {
	// Create appends a work order. When image data is supplied it is
	// stored first and the resulting path recorded on the order; an
	// image failure is non-fatal and leaves the path empty.
	Create(ctx context.Context, input domain.WorkOrder, image []byte) (domain.WorkOrder, error)

	// Update merges fields into the order with the given id.
	Update(ctx context.Context, id string, fields map[string]string) (domain.WorkOrder, error)

	// Complete archives the order with the given id into the completed
	// document, stamping the actual repair date when supplied. The open
	// order is left in place.
	Complete(ctx context.Context, id, actualRepairDate string) (domain.CompletedWorkOrder, error)

	// List returns the open work orders.
	List(ctx context.Context) ([]domain.WorkOrder, error)

	// ListCompleted returns the archived work orders.
	ListCompleted(ctx context.Context) ([]domain.CompletedWorkOrder, error)

	// Clear resets the work order document to its default empty shape.
	Clear(ctx context.Context) error
}

// ChangeLogService manages repair-date modification entries.
type ChangeLogService interface {
	// Create appends a change log entry with a sequential id.
	Create(ctx context.Context, input domain.ChangeLogEntry) (domain.ChangeLogEntry, error)

	// List returns the change log entries.
	List(ctx context.Context) ([]domain.ChangeLogEntry, error)

	// Clear resets the change log document to its default empty shape.
	Clear(ctx context.Context) error
}

// ImageService stores defect photos as base64 blobs in the backing
// repository.
type ImageService interface {
	// Save thumbnails, re-encodes and stores the image, returning the
	// stored repository path.
	Save(ctx context.Context, data []byte, name string) (string, error)

	// ClearAll removes every stored image, best effort.
	ClearAll(ctx context.Context) error
}
