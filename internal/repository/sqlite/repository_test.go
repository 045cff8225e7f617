package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billable-timer/internal/errors"
)

func setupTestDB(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func newTestSession(uuid string) *Session {
	start := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)
	return &Session{
		SessionUUID:     uuid,
		ProjectName:     "Acme",
		Description:     "API work",
		StartTime:       start,
		StopTime:        start.Add(45 * time.Minute),
		TotalMinutes:    "40",
		PausedMinutes:   "5",
		BillableMinutes: "40",
		Rate:            "60",
		Earned:          "40",
	}
}

func TestCreateProject(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	project := &Project{Name: "Acme"}
	require.NoError(t, repo.CreateProject(ctx, project))
	assert.Greater(t, project.ID, int64(0))
	assert.False(t, project.CreatedAt.IsZero())
}

func TestCreateProject_Idempotent(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	first := &Project{Name: "Acme"}
	require.NoError(t, repo.CreateProject(ctx, first))

	second := &Project{Name: "Acme"}
	require.NoError(t, repo.CreateProject(ctx, second))
	assert.Equal(t, first.ID, second.ID)

	projects, err := repo.ListProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestListProjects_InsertionOrder(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		require.NoError(t, repo.CreateProject(ctx, &Project{Name: name}))
	}

	projects, err := repo.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 3)
	assert.Equal(t, "Zeta", projects[0].Name)
	assert.Equal(t, "Alpha", projects[1].Name)
	assert.Equal(t, "Mid", projects[2].Name)
}

func TestCreateSession_AssignsSequentialIDs(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	first := newTestSession("11111111-1111-1111-1111-111111111111")
	second := newTestSession("22222222-2222-2222-2222-222222222222")

	require.NoError(t, repo.CreateSession(ctx, first))
	require.NoError(t, repo.CreateSession(ctx, second))

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestCreateSession_DuplicateUUIDReturnsExisting(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	original := newTestSession("11111111-1111-1111-1111-111111111111")
	require.NoError(t, repo.CreateSession(ctx, original))

	retry := newTestSession("11111111-1111-1111-1111-111111111111")
	require.NoError(t, repo.CreateSession(ctx, retry))
	assert.Equal(t, original.ID, retry.ID)

	sessions, err := repo.ListSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestGetSessionByUUID(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	session := newTestSession("33333333-3333-3333-3333-333333333333")
	require.NoError(t, repo.CreateSession(ctx, session))

	stored, err := repo.GetSessionByUUID(ctx, session.SessionUUID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", stored.ProjectName)
	assert.Equal(t, "API work", stored.Description)
	assert.True(t, session.StartTime.Equal(stored.StartTime))
	assert.True(t, session.StopTime.Equal(stored.StopTime))
	assert.Equal(t, "40", stored.TotalMinutes)
	assert.Equal(t, "60", stored.Rate)
}

func TestGetSessionByUUID_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetSessionByUUID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestListSessions_Empty(t *testing.T) {
	repo := setupTestDB(t)

	sessions, err := repo.ListSessions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sessions)
}
