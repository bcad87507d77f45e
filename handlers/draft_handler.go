package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drinkph/portal-go/dto"
	"github.com/drinkph/portal-go/models"
	"github.com/drinkph/portal-go/response"
	"github.com/drinkph/portal-go/utils"
	"github.com/drinkph/portal-go/validation"
	"github.com/drinkph/portal-go/workflow"
)

// DraftHandler exposes the client's form session: field updates, step
// navigation, files, and submission.
type DraftHandler struct {
	manager *workflow.Manager
}

func NewDraftHandler(manager *workflow.Manager) *DraftHandler {
	return &DraftHandler{manager: manager}
}

// DraftView is the draft as shown to the client; file contents stay
// server-side.
type DraftView struct {
	CompanyName    string                `json:"company_name"`
	ContactEmail   string                `json:"contact_email"`
	ContactPhone   string                `json:"contact_phone"`
	ProjectType    string                `json:"project_type"`
	Description    string                `json:"description"`
	Timeline       string                `json:"timeline"`
	BudgetRange    string                `json:"budget_range"`
	Files          []models.FileMetadata `json:"files"`
	CurrentStep    workflow.Step         `json:"current_step"`
	Currency       validation.Currency   `json:"currency"`
	BudgetRanges   []string              `json:"budget_ranges"`
	Errors         map[string]string     `json:"errors"`
	Submitting     bool                  `json:"submitting"`
	SuccessVisible bool                  `json:"success_visible"`
}

func draftView(s *workflow.Session) DraftView {
	d := s.Draft()
	return DraftView{
		CompanyName:    d.CompanyName,
		ContactEmail:   d.ContactEmail,
		ContactPhone:   d.ContactPhone,
		ProjectType:    d.ProjectType,
		Description:    d.Description,
		Timeline:       d.Timeline,
		BudgetRange:    d.BudgetRange,
		Files:          d.FileMetadata(),
		CurrentStep:    d.CurrentStep,
		Currency:       s.Currency(),
		BudgetRanges:   s.BudgetRanges(),
		Errors:         s.Errors(),
		Submitting:     s.Submitting(),
		SuccessVisible: s.SuccessVisible(),
	}
}

func (h *DraftHandler) session(c *gin.Context) (*workflow.Session, bool) {
	auth, err := utils.GetAuthFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return nil, false
	}
	return h.manager.Session(c.Request.Context(), auth.User), true
}

func (h *DraftHandler) GetDraft(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: draftView(s)})
}

// UpdateField sets one field and returns the advisory live-validation
// result with the refreshed view.
func (h *DraftHandler) UpdateField(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var input dto.UpdateFieldDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input"})
		return
	}

	result, err := s.UpdateField(input.Field, input.Value)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse{Data: gin.H{
		"validation": result,
		"draft":      draftView(s),
	}})
}

func (h *DraftHandler) SetCurrency(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var input dto.SetCurrencyDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input"})
		return
	}

	s.SetCurrency(validation.Currency(input.Currency))
	c.JSON(http.StatusOK, response.SuccessResponse{Data: draftView(s)})
}

func (h *DraftHandler) AddFile(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var input dto.AddFileDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input"})
		return
	}

	content, err := base64.StdEncoding.DecodeString(input.Content)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Content must be base64 encoded"})
		return
	}

	file, err := s.AddFile(input.Name, int64(len(content)), input.MimeType, content)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response.SuccessResponse{Data: gin.H{
		"file":  file.Metadata(),
		"draft": draftView(s),
	}})
}

func (h *DraftHandler) RemoveFile(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	if err := s.RemoveFile(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: draftView(s)})
}

func (h *DraftHandler) Next(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	if !s.Next() {
		c.JSON(http.StatusUnprocessableEntity, response.FieldErrorResponse{
			Error:  "Please fix the highlighted fields",
			Fields: s.Errors(),
		})
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: draftView(s)})
}

func (h *DraftHandler) Prev(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.Prev()
	c.JSON(http.StatusOK, response.SuccessResponse{Data: draftView(s)})
}

func (h *DraftHandler) Submit(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	created, err := s.Submit(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, workflow.ErrValidation):
			c.JSON(http.StatusUnprocessableEntity, response.FieldErrorResponse{
				Error:  "Please fix the highlighted fields",
				Fields: s.Errors(),
			})
		case errors.Is(err, workflow.ErrNotAtFinalStep):
			c.JSON(http.StatusConflict, response.ErrorResponse{Error: err.Error()})
		default:
			// Gateway failure: the draft and its auto-saved copy are intact,
			// so the client can retry without re-entering anything.
			c.JSON(http.StatusBadGateway, response.ErrorResponse{Error: "There was an error submitting your project. Please try again."})
		}
		return
	}

	if created == nil {
		c.JSON(http.StatusAccepted, response.MessageResponse{Message: "Submission already in progress"})
		return
	}

	c.JSON(http.StatusCreated, response.SuccessResponse{Data: gin.H{
		"submission": created,
		"draft":      draftView(s),
	}})
}

func (h *DraftHandler) Dismiss(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.Dismiss()
	c.JSON(http.StatusOK, response.SuccessResponse{Data: draftView(s)})
}
