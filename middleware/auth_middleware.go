package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/drinkph/portal-go/models"
	"github.com/drinkph/portal-go/response"
	"github.com/drinkph/portal-go/services"
	"github.com/drinkph/portal-go/types"
)

type Auth struct {
	service *services.AuthService
}

func NewAuth(service *services.AuthService) *Auth {
	return &Auth{service: service}
}

// Required resolves the bearer token (header or cookie) into an AuthContext
// and stores it on the request.
func (a *Auth) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Authorization header format must be Bearer {token}"})
				return
			}
			tokenStr = parts[1]
		} else {
			if cookie, err := c.Cookie("token"); err == nil {
				tokenStr = cookie
			} else {
				c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Authorization required (header or cookie)"})
				return
			}
		}

		auth, err := a.service.Authenticate(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Invalid session: " + err.Error()})
			return
		}

		c.Set("auth", auth)
		c.Next()
	}
}

// AdminOnly must run after Required.
func (a *Auth) AdminOnly() gin.HandlerFunc {
	return a.requireRole(models.RoleAdmin)
}

// ClientOnly must run after Required.
func (a *Auth) ClientOnly() gin.HandlerFunc {
	return a.requireRole(models.RoleClient)
}

func (a *Auth) requireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth, ok := c.MustGet("auth").(*types.AuthContext)
		if !ok || !auth.IsAuthenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
			return
		}
		if auth.User.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{Error: "Forbidden"})
			return
		}
		c.Next()
	}
}
