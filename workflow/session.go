// Package workflow implements the multi-step project request form: step
// gating with per-field errors, debounced auto-save of the draft, and the
// single-flight submission path that turns a valid draft into a durable
// project submission.
package workflow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/drinkph/portal-go/logger"
	"github.com/drinkph/portal-go/models"
	"github.com/drinkph/portal-go/validation"
)

// Gateway is the durable store consumed by the workflow. Create returns the
// authoritative stored record, including the server-assigned id.
type Gateway interface {
	Create(ctx context.Context, sub *models.ProjectSubmission) (*models.ProjectSubmission, error)
}

// DraftStore is the best-effort auto-save target. Get returns (nil, nil)
// when no draft is stored under the key.
type DraftStore interface {
	Get(ctx context.Context, key string) (*Draft, error)
	Set(ctx context.Context, key string, d *Draft) error
	Remove(ctx context.Context, key string) error
}

// Notifier is the fire-and-forget side channel hit on submission events.
type Notifier interface {
	Notify(event, subjectID, message string)
}

// Config carries the per-session knobs.
type Config struct {
	DraftKey      string
	ClientID      *uint
	AutoSaveDelay time.Duration
	DismissDelay  time.Duration
}

// Session owns exactly one draft. All state transitions happen on discrete
// calls; the mutex serializes them with the timer callbacks.
type Session struct {
	mu       sync.Mutex
	cfg      Config
	clock    Clock
	store    DraftStore
	gateway  Gateway
	notifier Notifier

	draft    *Draft
	currency validation.Currency
	errors   FieldErrors

	saveTimer    Timer
	dismissTimer Timer

	submitting     bool
	successVisible bool
	lastSubmission *models.ProjectSubmission
}

// NewSession builds a form session, replacing the initial empty draft with
// any previously auto-saved copy.
func NewSession(ctx context.Context, cfg Config, clock Clock, store DraftStore, gateway Gateway, notifier Notifier) *Session {
	s := &Session{
		cfg:      cfg,
		clock:    clock,
		store:    store,
		gateway:  gateway,
		notifier: notifier,
		draft:    NewDraft(),
		currency: validation.CurrencyPHP,
		errors:   FieldErrors{},
	}

	stored, err := store.Get(ctx, cfg.DraftKey)
	if err != nil {
		logger.Warn("draft store read failed for %s: %v", cfg.DraftKey, err)
	} else if stored != nil {
		if stored.CurrentStep < StepCompanyInfo || stored.CurrentStep > StepFilesReview {
			stored.CurrentStep = StepCompanyInfo
		}
		s.draft = stored
	}
	return s
}

// Draft returns a snapshot of the current draft.
func (s *Session) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.draft.clone()
}

func (s *Session) CurrentStep() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.CurrentStep
}

func (s *Session) Currency() validation.Currency {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currency
}

// Errors returns the per-field error set from the last failed gate.
func (s *Session) Errors() FieldErrors {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := FieldErrors{}
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

func (s *Session) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// SuccessVisible reports whether the success confirmation is being shown.
func (s *Session) SuccessVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.successVisible
}

// LastSubmission returns the record created by the most recent successful
// submit, or nil.
func (s *Session) LastSubmission() *models.ProjectSubmission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSubmission
}

// Live-validated fields; everything else is checked only at the gates.
var liveFields = map[string]bool{
	validation.FieldContactEmail: true,
	validation.FieldContactPhone: true,
	validation.FieldCompanyName:  true,
	validation.FieldDescription:  true,
}

// UpdateField sets one text field, clears its stale error, runs the advisory
// live validator where applicable, and restarts the auto-save timer.
func (s *Session) UpdateField(field, value string) (validation.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.draft.setField(field, value); err != nil {
		return validation.Result{}, err
	}
	delete(s.errors, field)

	var result validation.Result
	if liveFields[field] {
		result = validation.LiveValidate(field, value)
	} else {
		result = validation.Result{Valid: true}
	}

	s.scheduleSaveLocked()
	return result, nil
}

// SetCurrency switches the budget labels. The band sets are not comparable
// across currencies, so any chosen budget range resets to unset.
func (s *Session) SetCurrency(currency validation.Currency) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if currency != validation.CurrencyPHP && currency != validation.CurrencyUSD {
		return
	}
	if currency == s.currency {
		return
	}
	s.currency = currency
	s.draft.BudgetRange = ""
	delete(s.errors, validation.FieldBudgetRange)
	s.scheduleSaveLocked()
}

// BudgetRanges lists the bands for the session's selected currency.
func (s *Session) BudgetRanges() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return validation.BudgetRanges(s.currency)
}

// AddFile validates and attaches a file, keeping insertion order and the
// aggregate cap.
func (s *Session) AddFile(name string, sizeBytes int64, mimeType string, content []byte) (FileAttachment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.draft.Files) >= validation.MaxFileCount {
		return FileAttachment{}, fmt.Errorf("%w: at most %d files", ErrTooManyFiles, validation.MaxFileCount)
	}
	file, err := NewFileAttachment(name, sizeBytes, mimeType, content, s.clock.Now())
	if err != nil {
		return FileAttachment{}, err
	}
	s.draft.Files = append(s.draft.Files, file)
	s.scheduleSaveLocked()
	return file, nil
}

func (s *Session) RemoveFile(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, f := range s.draft.Files {
		if f.ID == id {
			s.draft.Files = append(s.draft.Files[:i], s.draft.Files[i+1:]...)
			s.scheduleSaveLocked()
			return nil
		}
	}
	return ErrFileNotAttached
}

// LiveValidate runs the advisory validator without mutating the draft.
func (s *Session) LiveValidate(field, value string) validation.Result {
	return validation.LiveValidate(field, value)
}

// Next advances past the current step only when that step validates. On
// failure the step is unchanged and the field errors are kept for display.
func (s *Session) Next() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	errs := stepErrors(s.draft, s.draft.CurrentStep, s.currency)
	if len(errs) > 0 {
		s.errors = errs
		return false
	}

	s.errors = FieldErrors{}
	if s.draft.CurrentStep < StepFilesReview {
		s.draft.CurrentStep++
		s.scheduleSaveLocked()
	}
	return true
}

// Prev never validates; backward navigation is always allowed.
func (s *Session) Prev() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft.CurrentStep > StepCompanyInfo {
		s.draft.CurrentStep--
		s.scheduleSaveLocked()
	}
}

// Submit re-validates the whole draft and creates the durable record. A
// second call while one is in flight is a no-op. On validation failure the
// session jumps to step 1 so the earliest offending field is visible. On
// gateway failure the draft and its auto-saved copy stay intact.
func (s *Session) Submit(ctx context.Context) (*models.ProjectSubmission, error) {
	s.mu.Lock()
	if s.submitting || s.successVisible {
		s.mu.Unlock()
		return nil, nil
	}
	if s.draft.CurrentStep != StepFilesReview {
		s.mu.Unlock()
		return nil, ErrNotAtFinalStep
	}

	errs := fullErrors(s.draft, s.currency)
	if len(errs) > 0 {
		s.errors = errs
		s.draft.CurrentStep = StepCompanyInfo
		s.mu.Unlock()
		return nil, ErrValidation
	}

	s.submitting = true
	now := s.clock.Now()
	files, err := models.EncodeFileList(s.draft.FileMetadata())
	if err != nil {
		s.submitting = false
		s.mu.Unlock()
		return nil, fmt.Errorf("encode file metadata: %w", err)
	}
	record := &models.ProjectSubmission{
		CompanyName:  s.draft.CompanyName,
		ContactEmail: s.draft.ContactEmail,
		ContactPhone: s.draft.ContactPhone,
		ProjectType:  models.ProjectType(s.draft.ProjectType),
		Description:  s.draft.Description,
		Timeline:     s.draft.Timeline,
		BudgetRange:  s.draft.BudgetRange,
		Status:       models.StatusSubmitted,
		ClientID:     s.cfg.ClientID,
		Files:        files,
		SubmittedAt:  now,
		LastUpdated:  now,
	}
	s.mu.Unlock()

	// The gateway call is not interruptible once sent; the guard above keeps
	// it at-most-once-attempted per burst.
	created, err := s.gateway.Create(ctx, record)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	if err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}

	s.notifier.Notify("submission", created.ID,
		fmt.Sprintf("New project submission received from %s", created.CompanyName))

	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
	}
	if err := s.store.Remove(ctx, s.cfg.DraftKey); err != nil {
		logger.Warn("draft store remove failed for %s: %v", s.cfg.DraftKey, err)
	}

	s.lastSubmission = created
	s.successVisible = true
	s.dismissTimer = s.clock.AfterFunc(s.cfg.DismissDelay, s.autoDismiss)
	return created, nil
}

// Dismiss ends the success confirmation early and resets the form.
func (s *Session) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.successVisible {
		return
	}
	if s.dismissTimer != nil {
		s.dismissTimer.Stop()
		s.dismissTimer = nil
	}
	s.resetLocked()
}

func (s *Session) autoDismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.successVisible {
		return
	}
	s.dismissTimer = nil
	s.resetLocked()
}

func (s *Session) resetLocked() {
	s.draft = NewDraft()
	s.errors = FieldErrors{}
	s.successVisible = false
	s.lastSubmission = nil
}

// Close cancels outstanding timers. Pending auto-save work is flushed so an
// evicted session loses nothing.
func (s *Session) Close() {
	s.mu.Lock()
	var flush *Draft
	if s.saveTimer != nil {
		if s.saveTimer.Stop() {
			flush = s.draft.clone()
		}
		s.saveTimer = nil
	}
	if s.dismissTimer != nil {
		s.dismissTimer.Stop()
		s.dismissTimer = nil
	}
	s.mu.Unlock()

	if flush != nil {
		s.writeDraft(flush)
	}
}

// scheduleSaveLocked restarts the debounce timer; rapid edits collapse into
// one store write carrying the latest values.
func (s *Session) scheduleSaveLocked() {
	if s.saveTimer != nil {
		s.saveTimer.Stop()
	}
	s.saveTimer = s.clock.AfterFunc(s.cfg.AutoSaveDelay, s.flushSave)
}

func (s *Session) flushSave() {
	s.mu.Lock()
	s.saveTimer = nil
	snapshot := s.draft.clone()
	s.mu.Unlock()
	s.writeDraft(snapshot)
}

func (s *Session) writeDraft(d *Draft) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.store.Set(ctx, s.cfg.DraftKey, d); err != nil {
		// Best effort only; a failed save never blocks the form.
		logger.Warn("draft auto-save failed for %s: %v", s.cfg.DraftKey, err)
	}
}
