package routes

import (
	"github.com/findyourpeers/peers/internal/app/controllers"
	"github.com/findyourpeers/peers/internal/middleware"
	"github.com/findyourpeers/peers/internal/pkg/websocket"
	"github.com/gin-gonic/gin"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth      *controllers.AuthController
	Groups    *controllers.GroupController
	Favorites *controllers.FavoriteController
	Posts     *controllers.PostController
	PostFeed  *websocket.Handler
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	// --- Authenticated routes ---
	authed := v1.Group("")
	authed.Use(authMiddleware.JWTAuth())
	{
		me := authed.Group("/me")
		{
			me.GET("", h.Auth.Me)
			me.GET("/groups", h.Groups.ListFollowedGroups)
		}

		groups := authed.Group("/groups")
		{
			groups.GET("", h.Groups.ListGroups)
			groups.POST("", h.Groups.CreateGroup)
			groups.GET("/:id", h.Groups.GetGroup)

			groups.GET("/:id/favorite", h.Favorites.GetStatus)
			groups.PUT("/:id/favorite", h.Favorites.Add)
			groups.DELETE("/:id/favorite", h.Favorites.Remove)
			groups.POST("/:id/favorite/toggle", h.Favorites.Toggle)

			groups.GET("/:id/posts", h.Posts.ListPosts)
			groups.POST("/:id/posts", h.Posts.CreatePost)
		}
	}

	// --- Live feed, token may also come from the query string ---
	v1.GET("/groups/:id/posts/ws", authMiddleware.WebSocketAuth(), h.PostFeed.HandleConnection)
}
