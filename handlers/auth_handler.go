package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drinkph/portal-go/dto"
	"github.com/drinkph/portal-go/response"
	"github.com/drinkph/portal-go/services"
	"github.com/drinkph/portal-go/utils"
)

type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input"})
		return
	}

	user, token, err := h.service.Login(input.Email, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, response.TokenResponse{
		Token:       token,
		UserID:      user.ID,
		Email:       user.Email,
		CompanyName: user.CompanyName,
		Role:        string(user.Role),
	})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input dto.RegisterClientDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input"})
		return
	}

	user, err := h.service.RegisterClient(input.Email, input.Password, input.CompanyName)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusConflict, response.ErrorResponse{Error: err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, response.SuccessResponse{Data: user})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	auth, err := utils.GetAuthFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.service.Logout(auth.Session.ID); err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	auth, err := utils.GetAuthFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: auth.User})
}
