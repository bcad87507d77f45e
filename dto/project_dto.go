package dto

type UpdateStatusDTO struct {
	Status     string  `json:"status" binding:"required"`
	AdminNotes *string `json:"admin_notes,omitempty"`
}
