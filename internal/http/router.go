// README: HTTP route registration.
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nusavarta/internal/http/middleware"
)

func (s *Server) globalMiddleware() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		middleware.Recovery(s.log),
		middleware.Logging(s.log),
		middleware.CORS(s.allowedOrigins),
	}
}

func registerRoutes(r *gin.Engine, s *Server) {
	r.GET("/health", s.status.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api", middleware.Timeout(s.requestTimeout))
	api.GET("/", s.status.Banner)
	api.GET("/story-places", s.places.StoryPlaces)

	chat := api.Group("")
	if s.verifier != nil {
		chat.Use(middleware.Auth(s.verifier, s.authRequired))
	}
	chat.Use(middleware.RateLimit(s.chatRate, s.chatBurst))
	chat.POST("/chat", s.chat.Chat)
}
