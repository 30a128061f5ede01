package server

import (
	"github.com/gin-gonic/gin"

	"github.com/thereayou/chatrooms/internal/handlers"
	"github.com/thereayou/chatrooms/internal/middleware"
	"github.com/thereayou/chatrooms/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	authH *handlers.AuthHandler,
	roomH *handlers.RoomHandler,
	wsH *handlers.WebSocketHandler,
	jwtMgr *auth.JWTManager,
	blacklist middleware.TokenBlacklist,
) {
	// Auth endpoints
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authH.Register)
		authGroup.POST("/login", authH.Login)
	}

	authed := r.Group("/auth")
	authed.Use(middleware.AuthMiddleware(jwtMgr, blacklist))
	{
		authed.POST("/logout", authH.Logout)
		authed.GET("/me", authH.Me)
	}

	// API endpoints
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(jwtMgr, blacklist))
	{
		api.GET("/rooms", roomH.ListRooms)
		api.POST("/rooms", roomH.CreateRoom)
		api.GET("/rooms/:slug", roomH.GetRoom)
	}

	// WebSocket
	wsGroup := r.Group("/ws")
	wsGroup.Use(middleware.WSAuthMiddleware(jwtMgr, blacklist))
	{
		wsGroup.GET("/:slug", wsH.HandleWebSocket)
	}
}
