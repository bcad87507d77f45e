package utils

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/drinkph/portal-go/types"
)

var GetAuthFromContext = func(c *gin.Context) (*types.AuthContext, error) {
	authVal, exists := c.Get("auth")
	if !exists {
		return nil, errors.New("auth context not found")
	}

	auth, ok := authVal.(*types.AuthContext)
	if !ok || !auth.IsAuthenticated {
		return nil, errors.New("invalid auth context")
	}

	return auth, nil
}
