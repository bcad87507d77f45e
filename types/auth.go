package types

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/drinkph/portal-go/models"
)

type Claims struct {
	SessionID string `json:"sid"`
	UserID    uint   `json:"uid"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// AuthContext is the resolved login state handed to handlers. It replaces
// ambient lookups with one explicit value per request.
type AuthContext struct {
	User            *models.User
	Session         *models.Session
	IsAuthenticated bool
}
