package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/drinkph/portal-go/logger"
	"github.com/drinkph/portal-go/models"
	"github.com/drinkph/portal-go/notify"
	"github.com/drinkph/portal-go/repositories"
)

var ErrInvalidStatus = errors.New("invalid project status")

type ProjectService struct {
	repos *repositories.Repos
	sink  notify.Sink
}

func NewProjectService(repos *repositories.Repos, sink notify.Sink) *ProjectService {
	return &ProjectService{repos: repos, sink: sink}
}

// Create persists a submission and returns the stored record. This is the
// gateway the form workflow submits through.
func (s *ProjectService) Create(ctx context.Context, sub *models.ProjectSubmission) (*models.ProjectSubmission, error) {
	if err := s.repos.Project.Create(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// ListAll returns submissions for the admin view, optionally narrowed by
// status and a free-text search over company, email and description.
func (s *ProjectService) ListAll(status models.ProjectStatus, search string) ([]models.ProjectSubmission, error) {
	subs, err := s.repos.Project.FindAll()
	if err != nil {
		return nil, err
	}

	if status == "" && search == "" {
		return subs, nil
	}

	needle := strings.ToLower(strings.TrimSpace(search))
	filtered := make([]models.ProjectSubmission, 0, len(subs))
	for _, sub := range subs {
		if status != "" && sub.Status != status {
			continue
		}
		if needle != "" && !matchesSearch(&sub, needle) {
			continue
		}
		filtered = append(filtered, sub)
	}
	return filtered, nil
}

func matchesSearch(sub *models.ProjectSubmission, needle string) bool {
	return strings.Contains(strings.ToLower(sub.CompanyName), needle) ||
		strings.Contains(strings.ToLower(sub.ContactEmail), needle) ||
		strings.Contains(strings.ToLower(sub.Description), needle)
}

// ListByClient returns the submissions owned by one client, for the tracker
// view.
func (s *ProjectService) ListByClient(clientID uint) ([]models.ProjectSubmission, error) {
	return s.repos.Project.FindByClientID(clientID)
}

func (s *ProjectService) Get(id string) (*models.ProjectSubmission, error) {
	return s.repos.Project.FindByID(id)
}

// History returns the recorded status changes for a submission, newest
// first.
func (s *ProjectService) History(projectID string) ([]models.StatusUpdate, error) {
	return s.repos.StatusUpdate.FindByProjectID(projectID)
}

// UpdateStatus applies an admin status change with optional notes. The
// returned record is the gateway's authoritative copy; on failure the prior
// state stays untouched. A history row is recorded and a notification
// fired on success.
func (s *ProjectService) UpdateStatus(id string, status models.ProjectStatus, notes *string) (*models.ProjectSubmission, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	prev, err := s.repos.Project.FindByID(id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"status":       status,
		"last_updated": time.Now(),
	}
	if notes != nil {
		fields["admin_notes"] = *notes
	}

	updated, err := s.repos.Project.Update(id, fields)
	if err != nil {
		return nil, err
	}

	history := &models.StatusUpdate{
		ProjectID:      id,
		PreviousStatus: prev.Status,
		NewStatus:      status,
	}
	if notes != nil {
		history.Notes = *notes
	}
	if err := s.repos.StatusUpdate.Create(history); err != nil {
		// History is secondary; the status change itself already stuck.
		logger.Warn("status history write failed for %s: %v", id, err)
	}

	s.sink.Notify(notify.EventStatusChange, id,
		fmt.Sprintf("Project %s status changed from %s to %s", id, prev.Status, status))

	return updated, nil
}
