package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	StatusSubmitted             ProjectStatus = "Submitted"
	StatusUnderReview           ProjectStatus = "Under Review"
	StatusInProgress            ProjectStatus = "In Progress"
	StatusPendingClientFeedback ProjectStatus = "Pending Client Feedback"
	StatusCompleted             ProjectStatus = "Completed"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusSubmitted, StatusUnderReview, StatusInProgress,
		StatusPendingClientFeedback, StatusCompleted:
		return true
	}
	return false
}

type ProjectType string

const (
	TypeWebsiteDevelopment      ProjectType = "Website Development"
	TypeDataIntegration         ProjectType = "Data Integration"
	TypeSustainabilityDashboard ProjectType = "Sustainability Dashboard"
	TypeCustomSolution          ProjectType = "Custom Solution"
)

var ProjectTypes = []ProjectType{
	TypeWebsiteDevelopment,
	TypeDataIntegration,
	TypeSustainabilityDashboard,
	TypeCustomSolution,
}

func (t ProjectType) Valid() bool {
	for _, pt := range ProjectTypes {
		if t == pt {
			return true
		}
	}
	return false
}

// FileMetadata is what survives of an uploaded file once a draft is
// submitted. Contents stay with the draft and are never stored durably.
type FileMetadata struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	SizeBytes  int64     `json:"size_bytes"`
	MimeType   string    `json:"mime_type"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type ProjectSubmission struct {
	ID           string         `json:"id" gorm:"type:uuid;primaryKey"`
	CompanyName  string         `json:"company_name" gorm:"size:255;not null"`
	ContactEmail string         `json:"contact_email" gorm:"size:255;not null"`
	ContactPhone string         `json:"contact_phone,omitempty" gorm:"size:32"`
	ProjectType  ProjectType    `json:"project_type" gorm:"size:64;not null"`
	Description  string         `json:"description" gorm:"type:text;not null"`
	Timeline     string         `json:"timeline" gorm:"size:255;not null"`
	BudgetRange  string         `json:"budget_range" gorm:"size:64;not null"`
	Status       ProjectStatus  `json:"status" gorm:"size:32;default:'Submitted'"`
	AdminNotes   string         `json:"admin_notes,omitempty" gorm:"type:text"`
	ClientID     *uint          `json:"client_id,omitempty" gorm:"index"`
	Files        datatypes.JSON `json:"files"`
	SubmittedAt  time.Time      `json:"submitted_at"`
	LastUpdated  time.Time      `json:"last_updated"`
	Client       *User          `json:"-" gorm:"foreignKey:ClientID"`
}

func (p *ProjectSubmission) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// FileList decodes the metadata column; an empty column yields nil.
func (p *ProjectSubmission) FileList() ([]FileMetadata, error) {
	if len(p.Files) == 0 {
		return nil, nil
	}
	var files []FileMetadata
	if err := json.Unmarshal(p.Files, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func EncodeFileList(files []FileMetadata) (datatypes.JSON, error) {
	if files == nil {
		files = []FileMetadata{}
	}
	raw, err := json.Marshal(files)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
