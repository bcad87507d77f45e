package repositories_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/drinkph/portal-go/db"
	"github.com/drinkph/portal-go/internal/testutils"
	"github.com/drinkph/portal-go/models"
	"github.com/drinkph/portal-go/repositories"
)

func setupRepos(t *testing.T) *repositories.Repos {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	gdb, cleanup := testutils.SetupPostgresForIntegration()
	t.Cleanup(cleanup)
	db.InitWithGormDB(gdb)
	return repositories.New()
}

func TestProjectRepoRoundTrip(t *testing.T) {
	repos := setupRepos(t)

	clientID := uint(1)
	files, err := models.EncodeFileList([]models.FileMetadata{
		{ID: "f1", Name: "brief.pdf", SizeBytes: 1024, MimeType: "application/pdf", UploadedAt: time.Now()},
	})
	require.NoError(t, err)

	sub := &models.ProjectSubmission{
		CompanyName:  "Acme Corp",
		ContactEmail: "client@acme.com",
		ProjectType:  models.TypeWebsiteDevelopment,
		Description:  "Storefront rebuild with inventory sync and analytics",
		Timeline:     "1-2 months",
		BudgetRange:  "Under ₱50,000",
		Status:       models.StatusSubmitted,
		ClientID:     &clientID,
		Files:        files,
		SubmittedAt:  time.Now(),
		LastUpdated:  time.Now(),
	}
	require.NoError(t, repos.Project.Create(sub))
	require.NotEmpty(t, sub.ID, "BeforeCreate should assign a uuid")

	got, err := repos.Project.FindByID(sub.ID)
	require.NoError(t, err)
	require.Equal(t, "Acme Corp", got.CompanyName)

	meta, err := got.FileList()
	require.NoError(t, err)
	require.Len(t, meta, 1)
	require.Equal(t, "brief.pdf", meta[0].Name)

	updated, err := repos.Project.Update(sub.ID, map[string]interface{}{
		"status":       models.StatusUnderReview,
		"admin_notes":  "Scoping call booked",
		"last_updated": time.Now(),
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusUnderReview, updated.Status)
	require.Equal(t, "Scoping call booked", updated.AdminNotes)

	byClient, err := repos.Project.FindByClientID(clientID)
	require.NoError(t, err)
	require.Len(t, byClient, 1)

	all, err := repos.Project.FindAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestSessionRepoExpiry(t *testing.T) {
	repos := setupRepos(t)

	user := &models.User{Email: "client@acme.com", PasswordHash: "x", Role: models.RoleClient}
	require.NoError(t, repos.User.Create(user))

	live := &models.Session{
		ID:        "11111111-1111-1111-1111-111111111111",
		UserID:    user.ID,
		Role:      models.RoleClient,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	stale := &models.Session{
		ID:        "22222222-2222-2222-2222-222222222222",
		UserID:    user.ID,
		Role:      models.RoleClient,
		CreatedAt: time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, repos.Session.Create(live))
	require.NoError(t, repos.Session.Create(stale))

	found, err := repos.Session.FindByID(live.ID)
	require.NoError(t, err)
	require.Equal(t, user.Email, found.User.Email, "FindByID preloads the user")

	purged, err := repos.Session.DeleteExpired()
	require.NoError(t, err)
	require.Equal(t, int64(1), purged)

	_, err = repos.Session.FindByID(stale.ID)
	require.Error(t, err)
	_, err = repos.Session.FindByID(live.ID)
	require.NoError(t, err)
}

func TestStatusUpdateRepoOrdering(t *testing.T) {
	repos := setupRepos(t)

	first := &models.StatusUpdate{ProjectID: "33333333-3333-3333-3333-333333333333",
		PreviousStatus: models.StatusSubmitted, NewStatus: models.StatusUnderReview}
	first.CreatedAt = time.Now().Add(-time.Minute)
	require.NoError(t, repos.StatusUpdate.Create(first))
	second := &models.StatusUpdate{ProjectID: "33333333-3333-3333-3333-333333333333",
		PreviousStatus: models.StatusUnderReview, NewStatus: models.StatusInProgress}
	require.NoError(t, repos.StatusUpdate.Create(second))

	updates, err := repos.StatusUpdate.FindByProjectID("33333333-3333-3333-3333-333333333333")
	require.NoError(t, err)
	require.Len(t, updates, 2)
	require.Equal(t, models.StatusInProgress, updates[0].NewStatus, "newest first")
}
