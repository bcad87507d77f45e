package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/drinkph/portal-go/handlers"
	"github.com/drinkph/portal-go/middleware"
)

func RegisterRoutes(
	r *gin.Engine,
	auth *middleware.Auth,
	authHandler *handlers.AuthHandler,
	draftHandler *handlers.DraftHandler,
	projectHandler *handlers.ProjectHandler,
	wsHandler *handlers.WSHandler,
) {
	r.Use(middleware.CORSMiddleware())

	r.POST("/auth/login", authHandler.Login)
	r.POST("/auth/register", authHandler.Register)

	authed := r.Group("/")
	authed.Use(auth.Required())
	{
		authed.POST("/auth/logout", authHandler.Logout)
		authed.GET("/auth/me", authHandler.Me)

		portal := authed.Group("/portal")
		portal.Use(auth.ClientOnly())
		{
			portal.GET("/draft", draftHandler.GetDraft)
			portal.PATCH("/draft", draftHandler.UpdateField)
			portal.PUT("/draft/currency", draftHandler.SetCurrency)
			portal.POST("/draft/files", draftHandler.AddFile)
			portal.DELETE("/draft/files/:id", draftHandler.RemoveFile)
			portal.POST("/draft/next", draftHandler.Next)
			portal.POST("/draft/prev", draftHandler.Prev)
			portal.POST("/draft/submit", draftHandler.Submit)
			portal.POST("/draft/dismiss", draftHandler.Dismiss)

			portal.GET("/projects", projectHandler.MyProjects)
		}

		admin := authed.Group("/admin")
		admin.Use(auth.AdminOnly())
		{
			admin.GET("/projects", projectHandler.ListAll)
			admin.GET("/projects/:id", projectHandler.Get)
			admin.PATCH("/projects/:id/status", projectHandler.UpdateStatus)
			admin.GET("/projects/:id/history", projectHandler.History)
		}
	}

	r.GET("/ws/events", wsHandler.Events)
}
