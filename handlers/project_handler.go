package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/drinkph/portal-go/dto"
	"github.com/drinkph/portal-go/models"
	"github.com/drinkph/portal-go/response"
	"github.com/drinkph/portal-go/services"
	"github.com/drinkph/portal-go/utils"
)

type ProjectHandler struct {
	service *services.ProjectService
}

func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// ListAll is the admin view: all submissions, optionally filtered by status
// and a free-text search.
func (h *ProjectHandler) ListAll(c *gin.Context) {
	status := models.ProjectStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid status filter"})
		return
	}

	subs, err := h.service.ListAll(status, c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: subs})
}

func (h *ProjectHandler) Get(c *gin.Context) {
	sub, err := h.service.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "Project not found"})
		} else {
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: sub})
}

// UpdateStatus applies an admin status/notes change and returns the stored
// record.
func (h *ProjectHandler) UpdateStatus(c *gin.Context) {
	var input dto.UpdateStatusDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input"})
		return
	}

	sub, err := h.service.UpdateStatus(c.Param("id"), models.ProjectStatus(input.Status), input.AdminNotes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "Project not found"})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: sub})
}

func (h *ProjectHandler) History(c *gin.Context) {
	updates, err := h.service.History(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: updates})
}

// MyProjects is the client tracker view, limited to the caller's own
// submissions.
func (h *ProjectHandler) MyProjects(c *gin.Context) {
	auth, err := utils.GetAuthFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	subs, err := h.service.ListByClient(auth.User.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: subs})
}
