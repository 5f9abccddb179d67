package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitecheck-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sitecheck-cli/internal/core/domain"
)

// testEnv wires the full service graph over an in-memory store.
type testEnv struct {
	store     *memory.FileStore
	session   *Session
	docs      *Documents
	images    *Images
	checklist *Checklist
	orders    *WorkOrders
	changeLog *ChangeLog
}

func newTestEnv() *testEnv {
	store := memory.NewFileStore()
	session := NewSession()
	docs := NewDocuments(store)
	images := NewImages(store)
	return &testEnv{
		store:     store,
		session:   session,
		docs:      docs,
		images:    images,
		checklist: NewChecklist(docs, images, session),
		orders:    NewWorkOrders(docs, images, session),
		changeLog: NewChangeLog(docs, session),
	}
}

func TestChecklist_Create_AssignsSequentialIDs(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	first, err := env.checklist.Create(ctx, domain.ChecklistRecord{Location: "Hall A"})
	require.NoError(t, err)
	assert.Equal(t, "1", first.ID)

	second, err := env.checklist.Create(ctx, domain.ChecklistRecord{Location: "Hall B"})
	require.NoError(t, err)
	assert.Equal(t, "2", second.ID)
}

func TestChecklist_Create_KeepsCallerID(t *testing.T) {
	env := newTestEnv()

	stored, err := env.checklist.Create(context.Background(), domain.ChecklistRecord{ID: "custom"})

	require.NoError(t, err)
	assert.Equal(t, "custom", stored.ID)
}

func TestChecklist_Create_RefreshesSession(t *testing.T) {
	env := newTestEnv()

	_, err := env.checklist.Create(context.Background(), domain.ChecklistRecord{Location: "Hall A"})
	require.NoError(t, err)

	snapshot, ok := env.session.Checklist()
	require.True(t, ok)
	require.Len(t, snapshot.Check, 1)
	assert.Equal(t, "Hall A", snapshot.Check[0].Location)
}

func TestChecklist_Update_MergesFields(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.checklist.Create(ctx, domain.ChecklistRecord{Location: "Hall A", Rating: 1})
	require.NoError(t, err)

	updated, err := env.checklist.Update(ctx, created.ID, map[string]string{
		"Rating":  "4",
		"Comment": "worse than reported",
	})

	require.NoError(t, err)
	assert.Equal(t, 4, updated.Rating)
	assert.Equal(t, "worse than reported", updated.Comment)
	assert.Equal(t, "Hall A", updated.Location)

	records, err := env.checklist.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 4, records[0].Rating)
}

func TestChecklist_Update_UnknownID(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.checklist.Create(ctx, domain.ChecklistRecord{Location: "Hall A"})
	require.NoError(t, err)

	_, err = env.checklist.Update(ctx, "99", map[string]string{"Comment": "x"})

	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	// The document is untouched by the failed update.
	records, listErr := env.checklist.List(ctx)
	require.NoError(t, listErr)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].Comment)
}

func TestChecklist_Update_UnknownField(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.checklist.Create(ctx, domain.ChecklistRecord{Location: "Hall A"})
	require.NoError(t, err)

	_, err = env.checklist.Update(ctx, created.ID, map[string]string{"Severity": "high"})

	assert.ErrorIs(t, err, domain.ErrUnknownField)
}

func TestChecklist_List_Empty(t *testing.T) {
	env := newTestEnv()

	records, err := env.checklist.List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestChecklist_Clear_ResetsDocumentAndSweepsImages(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.checklist.Create(ctx, domain.ChecklistRecord{Location: "Hall A"})
	require.NoError(t, err)

	_, err = env.images.Save(ctx, testImagePNG(t, 10, 10), "defect.txt")
	require.NoError(t, err)

	require.NoError(t, env.checklist.Clear(ctx))

	records, err := env.checklist.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = env.store.Get(ctx, "images/defect.txt")
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
}
