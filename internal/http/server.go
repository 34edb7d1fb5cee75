// README: API gateway; builds the gin engine and delegates to module services.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nusavarta/internal/http/handlers"
	"nusavarta/internal/infra"
	"nusavarta/internal/logger"
)

type ServerDeps struct {
	Relay handlers.ChatService
	Sites handlers.SiteLister
	// Verifier is nil when Firebase auth is disabled.
	Verifier       infra.TokenVerifier
	AuthRequired   bool
	AllowedOrigins []string
	RequestTimeout time.Duration
	// ChatRate and ChatBurst limit chat messages per caller; zero rate disables.
	ChatRate  float64
	ChatBurst int
	Version   string
	Log       *zap.Logger
}

type Server struct {
	chat   *handlers.ChatHandler
	places *handlers.PlacesHandler
	status *handlers.StatusHandler

	verifier       infra.TokenVerifier
	authRequired   bool
	allowedOrigins []string
	requestTimeout time.Duration
	chatRate       float64
	chatBurst      int
	log            *zap.Logger
}

func NewServer(deps ServerDeps) *Server {
	log := logger.OrNop(deps.Log).Named("http")
	return &Server{
		chat:           handlers.NewChatHandler(deps.Relay, log),
		places:         handlers.NewPlacesHandler(deps.Sites),
		status:         handlers.NewStatusHandler(deps.Version),
		verifier:       deps.Verifier,
		authRequired:   deps.AuthRequired,
		allowedOrigins: deps.AllowedOrigins,
		requestTimeout: deps.RequestTimeout,
		chatRate:       deps.ChatRate,
		chatBurst:      deps.ChatBurst,
		log:            log,
	}
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(s.globalMiddleware()...)
	registerRoutes(r, s)
	return r
}
