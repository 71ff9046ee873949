package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/arabchat/arabchat-server/internal/chat"
	"github.com/arabchat/arabchat-server/internal/config"
	"github.com/arabchat/arabchat-server/internal/directory"
)

// NewServer builds the HTTP server carrying the API routes and the chat
// WebSocket endpoint.
func NewServer(hub *chat.Hub, dir *directory.Directory, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware())

	api := NewAPIHandlers(dir, logger)
	router.GET("/api/health", api.Health)
	router.GET("/api/check-username", api.CheckUsername)

	router.GET("/chat", gin.WrapH(NewWSHandler(hub, logger)))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
