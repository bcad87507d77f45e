package workflow

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/drinkph/portal-go/models"
	"github.com/drinkph/portal-go/validation"
)

// Step is one of the four sequential form phases.
type Step int

const (
	StepCompanyInfo    Step = 1
	StepProjectDetails Step = 2
	StepTimelineBudget Step = 3
	StepFilesReview    Step = 4
)

// FieldErrors maps a field name to its human-readable message.
type FieldErrors map[string]string

var (
	ErrTooManyFiles    = errors.New("file limit reached")
	ErrFileType        = errors.New("file type not allowed")
	ErrFileTooLarge    = errors.New("file exceeds the size limit")
	ErrUnknownField    = errors.New("unknown field")
	ErrValidation      = errors.New("draft has validation errors")
	ErrNotAtFinalStep  = errors.New("submission is only available from the review step")
	ErrFileNotAttached = errors.New("file not attached")
)

// FileAttachment is immutable once constructed. Contents never leave the
// draft; only metadata survives submission.
type FileAttachment struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	SizeBytes  int64     `json:"size_bytes"`
	MimeType   string    `json:"mime_type"`
	Content    []byte    `json:"content,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// NewFileAttachment validates the type and size constraints before the
// attachment exists; a rejected file never enters a draft.
func NewFileAttachment(name string, sizeBytes int64, mimeType string, content []byte, now time.Time) (FileAttachment, error) {
	if !validation.ValidFileType(mimeType) {
		return FileAttachment{}, fmt.Errorf("%w: %s", ErrFileType, mimeType)
	}
	if !validation.ValidFileSize(sizeBytes) {
		return FileAttachment{}, fmt.Errorf("%w: %d bytes", ErrFileTooLarge, sizeBytes)
	}
	return FileAttachment{
		ID:         uuid.NewString(),
		Name:       name,
		SizeBytes:  sizeBytes,
		MimeType:   mimeType,
		Content:    content,
		UploadedAt: now,
	}, nil
}

func (f FileAttachment) Metadata() models.FileMetadata {
	return models.FileMetadata{
		ID:         f.ID,
		Name:       f.Name,
		SizeBytes:  f.SizeBytes,
		MimeType:   f.MimeType,
		UploadedAt: f.UploadedAt,
	}
}

// Draft is the in-progress submission, owned by one form session.
type Draft struct {
	CompanyName  string           `json:"company_name"`
	ContactEmail string           `json:"contact_email"`
	ContactPhone string           `json:"contact_phone"`
	ProjectType  string           `json:"project_type"`
	Description  string           `json:"description"`
	Timeline     string           `json:"timeline"`
	BudgetRange  string           `json:"budget_range"`
	Files        []FileAttachment `json:"files"`
	CurrentStep  Step             `json:"current_step"`
}

func NewDraft() *Draft {
	return &Draft{CurrentStep: StepCompanyInfo}
}

// setField assigns a text field by its wire name. File changes go through
// AddFile/RemoveFile on the session instead.
func (d *Draft) setField(field, value string) error {
	switch field {
	case validation.FieldCompanyName:
		d.CompanyName = value
	case validation.FieldContactEmail:
		d.ContactEmail = value
	case validation.FieldContactPhone:
		d.ContactPhone = value
	case validation.FieldProjectType:
		d.ProjectType = value
	case validation.FieldDescription:
		d.Description = value
	case validation.FieldTimeline:
		d.Timeline = value
	case validation.FieldBudgetRange:
		d.BudgetRange = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}

func (d *Draft) clone() *Draft {
	cp := *d
	cp.Files = append([]FileAttachment(nil), d.Files...)
	return &cp
}

// FileMetadata returns the attachments reduced to their durable form, in
// insertion order.
func (d *Draft) FileMetadata() []models.FileMetadata {
	meta := make([]models.FileMetadata, 0, len(d.Files))
	for _, f := range d.Files {
		meta = append(meta, f.Metadata())
	}
	return meta
}
