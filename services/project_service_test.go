package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/drinkph/portal-go/models"
	"github.com/drinkph/portal-go/repositories"
	"github.com/drinkph/portal-go/repositories/mock_repositories"
)

type recordingSink struct {
	events []string
}

func (s *recordingSink) Notify(event, subjectID, message string) {
	s.events = append(s.events, event)
}

// --------------------- Setup ---------------------
func setupProjectMocks(t *testing.T) (*ProjectService,
	*mock_repositories.MockProjectRepo,
	*mock_repositories.MockStatusUpdateRepo,
	*recordingSink) {

	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockProject := mock_repositories.NewMockProjectRepo(ctrl)
	mockStatus := mock_repositories.NewMockStatusUpdateRepo(ctrl)

	repos := &repositories.Repos{
		Project:      mockProject,
		StatusUpdate: mockStatus,
	}

	sink := &recordingSink{}
	svc := NewProjectService(repos, sink)
	return svc, mockProject, mockStatus, sink
}

func sampleSubmissions() []models.ProjectSubmission {
	return []models.ProjectSubmission{
		{
			ID:           "a1",
			CompanyName:  "Acme Corp",
			ContactEmail: "client@acme.com",
			Description:  "Storefront rebuild with inventory sync",
			Status:       models.StatusSubmitted,
		},
		{
			ID:           "b2",
			CompanyName:  "Beta Industries",
			ContactEmail: "ops@beta.ph",
			Description:  "Sustainability dashboard for three plants",
			Status:       models.StatusInProgress,
		},
		{
			ID:           "c3",
			CompanyName:  "Gamma Trading",
			ContactEmail: "hello@gamma.com",
			Description:  "Custom ERP integration",
			Status:       models.StatusSubmitted,
		},
	}
}

// --------------------- Create ---------------------
func TestCreateSubmission(t *testing.T) {
	svc, mockProject, _, _ := setupProjectMocks(t)

	sub := &models.ProjectSubmission{CompanyName: "Acme Corp"}
	mockProject.EXPECT().Create(sub).Return(nil)

	created, err := svc.Create(context.Background(), sub)
	assert.NoError(t, err)
	assert.Equal(t, sub, created)
}

func TestCreateSubmissionFailure(t *testing.T) {
	svc, mockProject, _, _ := setupProjectMocks(t)

	sub := &models.ProjectSubmission{CompanyName: "Acme Corp"}
	mockProject.EXPECT().Create(sub).Return(errors.New("insert failed"))

	created, err := svc.Create(context.Background(), sub)
	assert.Error(t, err)
	assert.Nil(t, created)
}

// --------------------- ListAll ---------------------
func TestListAllFilters(t *testing.T) {
	svc, mockProject, _, _ := setupProjectMocks(t)

	t.Run("no filter returns everything", func(t *testing.T) {
		mockProject.EXPECT().FindAll().Return(sampleSubmissions(), nil)
		subs, err := svc.ListAll("", "")
		assert.NoError(t, err)
		assert.Len(t, subs, 3)
	})

	t.Run("status filter", func(t *testing.T) {
		mockProject.EXPECT().FindAll().Return(sampleSubmissions(), nil)
		subs, err := svc.ListAll(models.StatusSubmitted, "")
		assert.NoError(t, err)
		assert.Len(t, subs, 2)
	})

	t.Run("search matches company case-insensitively", func(t *testing.T) {
		mockProject.EXPECT().FindAll().Return(sampleSubmissions(), nil)
		subs, err := svc.ListAll("", "ACME")
		assert.NoError(t, err)
		assert.Len(t, subs, 1)
		assert.Equal(t, "Acme Corp", subs[0].CompanyName)
	})

	t.Run("search matches email and description", func(t *testing.T) {
		mockProject.EXPECT().FindAll().Return(sampleSubmissions(), nil)
		subs, err := svc.ListAll("", "beta.ph")
		assert.NoError(t, err)
		assert.Len(t, subs, 1)

		mockProject.EXPECT().FindAll().Return(sampleSubmissions(), nil)
		subs, err = svc.ListAll("", "dashboard")
		assert.NoError(t, err)
		assert.Len(t, subs, 1)
	})

	t.Run("status and search combine", func(t *testing.T) {
		mockProject.EXPECT().FindAll().Return(sampleSubmissions(), nil)
		subs, err := svc.ListAll(models.StatusSubmitted, "gamma")
		assert.NoError(t, err)
		assert.Len(t, subs, 1)
		assert.Equal(t, "c3", subs[0].ID)
	})

	t.Run("no match yields empty slice", func(t *testing.T) {
		mockProject.EXPECT().FindAll().Return(sampleSubmissions(), nil)
		subs, err := svc.ListAll("", "nonexistent")
		assert.NoError(t, err)
		assert.Empty(t, subs)
	})
}

// --------------------- UpdateStatus ---------------------
func TestUpdateStatusSuccess(t *testing.T) {
	svc, mockProject, mockStatus, sink := setupProjectMocks(t)

	prev := &models.ProjectSubmission{ID: "a1", Status: models.StatusSubmitted}
	updated := &models.ProjectSubmission{ID: "a1", Status: models.StatusUnderReview}

	mockProject.EXPECT().FindByID("a1").Return(prev, nil)
	mockProject.EXPECT().Update("a1", gomock.Any()).DoAndReturn(
		func(id string, fields map[string]interface{}) (*models.ProjectSubmission, error) {
			assert.Equal(t, models.StatusUnderReview, fields["status"])
			assert.IsType(t, time.Time{}, fields["last_updated"])
			assert.NotContains(t, fields, "admin_notes")
			return updated, nil
		})
	mockStatus.EXPECT().Create(gomock.Any()).DoAndReturn(func(h *models.StatusUpdate) error {
		assert.Equal(t, "a1", h.ProjectID)
		assert.Equal(t, models.StatusSubmitted, h.PreviousStatus)
		assert.Equal(t, models.StatusUnderReview, h.NewStatus)
		return nil
	})

	got, err := svc.UpdateStatus("a1", models.StatusUnderReview, nil)
	assert.NoError(t, err)
	assert.Equal(t, updated, got)
	assert.Equal(t, []string{"status_change"}, sink.events)
}

func TestUpdateStatusWithNotes(t *testing.T) {
	svc, mockProject, mockStatus, _ := setupProjectMocks(t)

	prev := &models.ProjectSubmission{ID: "a1", Status: models.StatusInProgress}
	notes := "Waiting on brand assets"

	mockProject.EXPECT().FindByID("a1").Return(prev, nil)
	mockProject.EXPECT().Update("a1", gomock.Any()).DoAndReturn(
		func(id string, fields map[string]interface{}) (*models.ProjectSubmission, error) {
			assert.Equal(t, notes, fields["admin_notes"])
			return prev, nil
		})
	mockStatus.EXPECT().Create(gomock.Any()).DoAndReturn(func(h *models.StatusUpdate) error {
		assert.Equal(t, notes, h.Notes)
		return nil
	})

	_, err := svc.UpdateStatus("a1", models.StatusPendingClientFeedback, &notes)
	assert.NoError(t, err)
}

func TestUpdateStatusRejectsInvalid(t *testing.T) {
	svc, _, _, sink := setupProjectMocks(t)

	_, err := svc.UpdateStatus("a1", "Archived", nil)
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Empty(t, sink.events)
}

func TestUpdateStatusNotFound(t *testing.T) {
	svc, mockProject, _, sink := setupProjectMocks(t)

	mockProject.EXPECT().FindByID("missing").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.UpdateStatus("missing", models.StatusCompleted, nil)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Empty(t, sink.events)
}

func TestUpdateStatusFailureKeepsPriorState(t *testing.T) {
	svc, mockProject, _, sink := setupProjectMocks(t)

	prev := &models.ProjectSubmission{ID: "a1", Status: models.StatusSubmitted}
	mockProject.EXPECT().FindByID("a1").Return(prev, nil)
	mockProject.EXPECT().Update("a1", gomock.Any()).Return(nil, errors.New("update failed"))

	_, err := svc.UpdateStatus("a1", models.StatusCompleted, nil)
	assert.Error(t, err)
	assert.Empty(t, sink.events)
}

func TestUpdateStatusHistoryFailureIsNonFatal(t *testing.T) {
	svc, mockProject, mockStatus, sink := setupProjectMocks(t)

	prev := &models.ProjectSubmission{ID: "a1", Status: models.StatusSubmitted}
	mockProject.EXPECT().FindByID("a1").Return(prev, nil)
	mockProject.EXPECT().Update("a1", gomock.Any()).Return(prev, nil)
	mockStatus.EXPECT().Create(gomock.Any()).Return(errors.New("history insert failed"))

	_, err := svc.UpdateStatus("a1", models.StatusUnderReview, nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"status_change"}, sink.events)
}

// --------------------- Reads ---------------------
func TestListByClient(t *testing.T) {
	svc, mockProject, _, _ := setupProjectMocks(t)

	subs := sampleSubmissions()[:1]
	mockProject.EXPECT().FindByClientID(uint(7)).Return(subs, nil)

	got, err := svc.ListByClient(7)
	assert.NoError(t, err)
	assert.Equal(t, subs, got)
}

func TestHistory(t *testing.T) {
	svc, _, mockStatus, _ := setupProjectMocks(t)

	updates := []models.StatusUpdate{{ProjectID: "a1", NewStatus: models.StatusUnderReview}}
	mockStatus.EXPECT().FindByProjectID("a1").Return(updates, nil)

	got, err := svc.History("a1")
	assert.NoError(t, err)
	assert.Equal(t, updates, got)
}
