package server

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/thereayou/chatrooms/internal/chat"
	"github.com/thereayou/chatrooms/internal/database"
	"github.com/thereayou/chatrooms/internal/handlers"
	"github.com/thereayou/chatrooms/internal/middleware"
	"github.com/thereayou/chatrooms/internal/ws"
	"github.com/thereayou/chatrooms/pkg/auth"
)

type Server struct {
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	Hub        *ws.Hub
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	dbConn := &database.Database{}
	if err := dbConn.Connect(); err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	jwtMgr := auth.NewJWTManager(
		os.Getenv("JWT_SECRET"),
		24*time.Hour,
	)

	hub := ws.NewHub()
	chatService := chat.NewService(dbConn, hub)
	blacklist := middleware.NewRedisBlacklist(rdb)

	authH := handlers.NewAuthHandler(dbConn, jwtMgr, rdb)
	roomH := handlers.NewRoomHandler(dbConn, hub)
	msgH := handlers.NewMessageHandler(dbConn, chatService)
	wsH := handlers.NewWebSocketHandler(hub, dbConn, msgH)

	router := gin.Default()
	APIEndpoints(router, authH, roomH, wsH, jwtMgr, blacklist)

	return &Server{
		Router:     router,
		DB:         dbConn,
		Redis:      rdb,
		JWTManager: jwtMgr,
		Hub:        hub,
	}
}

func (s *Server) Run() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := s.Router.Run(":" + port); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}
