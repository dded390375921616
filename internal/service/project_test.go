package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testOwnerID = "0b6f6f48-98a0-4a5b-93bb-1d2e9e3f7a10"

func newTestProjectService(repo *stubProjectRepository, store *stubStorage) ProjectService {
	return NewProjectService(repo, store, zap.NewNop())
}

func createTestProject(t *testing.T, svc ProjectService) string {
	t.Helper()
	id, err := svc.Create(testOwnerID, &CreateProjectInput{
		Name:        "Bridge repair",
		Description: "Repair the old bridge",
		City:        "Riga",
		Country:     "Latvia",
		StartDate:   time.Now(),
		EndDate:     time.Now().AddDate(0, 3, 0),
	})
	require.NoError(t, err)
	return id
}

func TestAddMembers_RequiresOwnership(t *testing.T) {
	repo := newStubProjectRepository()
	svc := newTestProjectService(repo, newStubStorage())
	projectID := createTestProject(t, svc)

	_, err := svc.AddMembers(projectID, "someone-else", []string{"a@ex.com"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, repo.members)

	id, err := svc.AddMembers(projectID, testOwnerID, []string{"a@ex.com", "b@ex.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	require.Len(t, repo.members, 1)
	assert.Equal(t, []string{"a@ex.com", "b@ex.com"}, []string(repo.members[0].EmailIDs))
}

func TestListMembers_WrongOwner(t *testing.T) {
	repo := newStubProjectRepository()
	svc := newTestProjectService(repo, newStubStorage())
	projectID := createTestProject(t, svc)

	_, err := svc.AddMembers(projectID, testOwnerID, []string{"a@ex.com"})
	require.NoError(t, err)

	_, err = svc.ListMembers(projectID, "someone-else")
	assert.ErrorIs(t, err, ErrNotFound)

	members, err := svc.ListMembers(projectID, testOwnerID)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestList_OffsetPassedThrough(t *testing.T) {
	repo := newStubProjectRepository()
	svc := newTestProjectService(repo, newStubStorage())

	_, err := svc.List(testOwnerID, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, repo.lastOffset)
	assert.Equal(t, 10, repo.lastLimit)

	// Page and size below 1 fall back to defaults.
	_, err = svc.List(testOwnerID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, repo.lastOffset)
	assert.Equal(t, 10, repo.lastLimit)
}

func TestAddDocuments_UnknownProjectWritesNothing(t *testing.T) {
	repo := newStubProjectRepository()
	store := newStubStorage()
	svc := newTestProjectService(repo, store)

	files := makeFileHeaders(t, "plan.pdf")
	_, err := svc.AddDocuments(context.Background(), "2c9a1f6e-0000-4000-8000-000000000000", files)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, store.saved)
	assert.Empty(t, repo.documents)
}

func TestAddDocuments_Success(t *testing.T) {
	repo := newStubProjectRepository()
	store := newStubStorage()
	svc := newTestProjectService(repo, store)
	projectID := createTestProject(t, svc)

	files := makeFileHeaders(t, "plan.pdf", "budget.xlsx")
	ids, err := svc.AddDocuments(context.Background(), projectID, files)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.Len(t, store.saved, 2)
	require.Len(t, repo.documents, 2)
	for _, doc := range repo.documents {
		assert.Equal(t, projectID, doc.ProjectID)
		assert.True(t, strings.HasPrefix(doc.DocumentPath, "/uploads/"))
	}
}

func TestAddDocuments_InsertFailureRemovesFile(t *testing.T) {
	repo := newStubProjectRepository()
	repo.addDocErr = errors.New("insert failed")
	store := newStubStorage()
	svc := newTestProjectService(repo, store)
	projectID := createTestProject(t, svc)

	files := makeFileHeaders(t, "plan.pdf")
	_, err := svc.AddDocuments(context.Background(), projectID, files)
	require.Error(t, err)

	// The compensating delete ran for the file written before the insert.
	assert.Len(t, store.removed, 1)
	assert.Empty(t, store.saved)
	assert.Empty(t, repo.documents)
}
