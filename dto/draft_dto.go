package dto

type UpdateFieldDTO struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

type SetCurrencyDTO struct {
	Currency string `json:"currency" binding:"required,oneof=PHP USD"`
}

// AddFileDTO carries the file the way the portal holds it: name, declared
// type, and the base64-encoded bytes.
type AddFileDTO struct {
	Name     string `json:"name" binding:"required"`
	MimeType string `json:"mime_type" binding:"required"`
	Content  string `json:"content" binding:"required"`
}
