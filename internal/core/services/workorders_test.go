package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitecheck-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sitecheck-cli/internal/core/domain"
	"github.com/custodia-labs/sitecheck-cli/internal/core/ports/driven"
)

// failingImageStore rejects every write under images/ while passing
// everything else through.
type failingImageStore struct {
	driven.FileStore
}

func (s *failingImageStore) Create(ctx context.Context, path string, data []byte, msg string) error {
	if strings.HasPrefix(path, ImagesDir+"/") {
		return fmt.Errorf("create %s: storage unavailable", path)
	}
	return s.FileStore.Create(ctx, path, data, msg)
}

func TestWorkOrders_Create_AssignsSequentialIDs(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	first, err := env.orders.Create(ctx, domain.WorkOrder{Location: "Hall A", Rating: 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, "1", first.ID)
	assert.Empty(t, first.Image)

	second, err := env.orders.Create(ctx, domain.WorkOrder{Location: "Hall B"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "2", second.ID)
}

func TestWorkOrders_Create_WithImage(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	stored, err := env.orders.Create(ctx,
		domain.WorkOrder{ID: "5", Location: "Hall A"}, testImagePNG(t, 10, 10))

	require.NoError(t, err)
	assert.Equal(t, "images/5"+ImageSuffix, stored.Image)

	_, err = env.store.Get(ctx, stored.Image)
	assert.NoError(t, err)
}

func TestWorkOrders_Create_ImageFailureIsNonFatal(t *testing.T) {
	store := &failingImageStore{FileStore: memory.NewFileStore()}
	session := NewSession()
	docs := NewDocuments(store)
	orders := NewWorkOrders(docs, NewImages(store), session)

	stored, err := orders.Create(context.Background(),
		domain.WorkOrder{Location: "Hall A"}, testImagePNG(t, 10, 10))

	require.NoError(t, err)
	assert.Equal(t, "1", stored.ID)
	assert.Empty(t, stored.Image)
}

func TestWorkOrders_Update_MergesFields(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.orders.Create(ctx, domain.WorkOrder{Location: "Hall A"}, nil)
	require.NoError(t, err)

	updated, err := env.orders.Update(ctx, created.ID, map[string]string{
		"Actual Repair Date": "2026-09-02 16:30:00",
		"Responsible Person": "Jones",
	})

	require.NoError(t, err)
	assert.Equal(t, "2026-09-02 16:30:00", updated.ActualRepairDate)
	assert.Equal(t, "Jones", updated.ResponsiblePerson)
}

func TestWorkOrders_Update_UnknownID(t *testing.T) {
	env := newTestEnv()

	_, err := env.orders.Update(context.Background(), "99", map[string]string{"Comment": "x"})

	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestWorkOrders_Complete_ArchivesOrder(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.orders.Create(ctx, domain.WorkOrder{
		Location:       "Hall A",
		Element:        "Window",
		Rating:         2,
		Image:          "images/1.txt",
		Comment:        "cracked",
		SafetyRelated:  "yes",
		QualityRelated: "",
	}, nil)
	require.NoError(t, err)

	archived, err := env.orders.Complete(ctx, created.ID, "2026-09-05 11:00:00")
	require.NoError(t, err)

	assert.Equal(t, created.ID, archived.ID)
	assert.Equal(t, "Hall A", archived.Location)
	assert.Equal(t, "Window", archived.Element)
	assert.Equal(t, "2026-09-05 11:00:00", archived.ActualRepairDate)
	assert.Equal(t, "yes", archived.SafetyRelated)

	completed, err := env.orders.ListCompleted(ctx)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, archived, completed[0])

	// The open order stays in place.
	open, err := env.orders.List(ctx)
	require.NoError(t, err)
	assert.Len(t, open, 1)
}

func TestWorkOrders_Complete_KeepsExistingRepairDate(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.orders.Create(ctx, domain.WorkOrder{
		ActualRepairDate: "2026-09-01 09:00:00",
	}, nil)
	require.NoError(t, err)

	archived, err := env.orders.Complete(ctx, created.ID, "")

	require.NoError(t, err)
	assert.Equal(t, "2026-09-01 09:00:00", archived.ActualRepairDate)
}

func TestWorkOrders_Complete_UnknownID(t *testing.T) {
	env := newTestEnv()

	_, err := env.orders.Complete(context.Background(), "99", "")

	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

// Completed ids are scoped to the completed document and may collide
// with open order ids without conflict.
func TestWorkOrders_Complete_SameOrderTwice(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.orders.Create(ctx, domain.WorkOrder{Location: "Hall A"}, nil)
	require.NoError(t, err)

	_, err = env.orders.Complete(ctx, created.ID, "")
	require.NoError(t, err)
	_, err = env.orders.Complete(ctx, created.ID, "")
	require.NoError(t, err)

	completed, err := env.orders.ListCompleted(ctx)
	require.NoError(t, err)
	assert.Len(t, completed, 2)
}

func TestWorkOrders_Clear_LeavesImagesAndCompleted(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.orders.Create(ctx,
		domain.WorkOrder{ID: "1", Location: "Hall A"}, testImagePNG(t, 10, 10))
	require.NoError(t, err)
	_, err = env.orders.Complete(ctx, created.ID, "")
	require.NoError(t, err)

	require.NoError(t, env.orders.Clear(ctx))

	open, err := env.orders.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, open)

	completed, err := env.orders.ListCompleted(ctx)
	require.NoError(t, err)
	assert.Len(t, completed, 1)

	_, err = env.store.Get(ctx, "images/1"+ImageSuffix)
	assert.NoError(t, err)
}

// End-to-end flow across the four documents.
func TestWorkOrders_InspectionFlow(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	// A defect observed during inspection.
	observation, err := env.checklist.Create(ctx, domain.ChecklistRecord{
		Location:     "Hall A",
		Element:      "Window",
		DetectorName: "Smith",
		Rating:       2,
		Comment:      "cracked pane",
	})
	require.NoError(t, err)
	assert.Equal(t, "1", observation.ID)

	// Escalated into a work order.
	order, err := env.orders.Create(ctx, domain.WorkOrder{
		Location:           observation.Location,
		Element:            observation.Element,
		DetectorName:       observation.DetectorName,
		Rating:             observation.Rating,
		ResponsiblePerson:  "Jones",
		ExpectedRepairDate: "2026-09-01 10:00:00",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "1", order.ID)
	assert.Empty(t, order.Image)

	// The repair date slips; the change is audited.
	_, err = env.orders.Update(ctx, order.ID, map[string]string{
		"Expected Repair Date": "2026-09-10 10:00:00",
	})
	require.NoError(t, err)

	entry, err := env.changeLog.Create(ctx, domain.ChangeLogEntry{
		ModifierName:     "Jones",
		ModificationType: "update Expected Repair Date",
		NewDate:          "2026-09-10 10:00:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "1", entry.ID)

	// The repair lands and the order is archived.
	archived, err := env.orders.Complete(ctx, order.ID, "2026-09-09 15:00:00")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-09 15:00:00", archived.ActualRepairDate)

	completed, err := env.orders.ListCompleted(ctx)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "Hall A", completed[0].Location)
}
