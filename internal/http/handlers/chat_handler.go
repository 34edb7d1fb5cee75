// README: Chat relay endpoint.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nusavarta/internal/http/middleware"
	"nusavarta/internal/logger"
	"nusavarta/internal/modules/route"
	"nusavarta/internal/modules/session"
	"nusavarta/internal/service"
)

const (
	defaultUserID = "defaultUser"

	msgInvalidMessage = "Pesan tidak boleh kosong dan harus berupa string."
	msgInvalidUserID  = "userId tidak valid."
	msgServerError    = "Aduh, terjadi kesalahan di pusat data saya."
)

type ChatService interface {
	Handle(ctx context.Context, userID, message string) (service.Reply, error)
}

type ChatHandler struct {
	relay ChatService
	log   *zap.Logger
}

func NewChatHandler(relay ChatService, log *zap.Logger) *ChatHandler {
	return &ChatHandler{relay: relay, log: logger.OrNop(log).Named("chat")}
}

// Fields are decoded loosely so a non-string message is reported as a
// validation error rather than a JSON error.
type chatReq struct {
	Message any `json:"message"`
	UserID  any `json:"userId"`
}

type replyResp struct {
	Reply string `json:"reply"`
}

type routeResp struct {
	RouteData *route.Result `json:"routeData"`
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, msgInvalidMessage)
		return
	}

	message, ok := req.Message.(string)
	if !ok || strings.TrimSpace(message) == "" {
		writeError(c, http.StatusBadRequest, msgInvalidMessage)
		return
	}

	userID, ok := resolveUserID(c, req.UserID)
	if !ok {
		writeError(c, http.StatusBadRequest, msgInvalidUserID)
		return
	}

	reply, err := h.relay.Handle(c.Request.Context(), userID, message)
	if err != nil {
		h.log.Error("chat turn failed", zap.String("user_id", userID), zap.Error(err))
		status := http.StatusInternalServerError
		if errors.Is(err, session.ErrLockTimeout) || errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusServiceUnavailable
		}
		writeError(c, status, msgServerError)
		return
	}

	if reply.Route != nil {
		writeJSON(c, http.StatusOK, routeResp{RouteData: reply.Route})
		return
	}
	writeJSON(c, http.StatusOK, replyResp{Reply: reply.Text})
}

// resolveUserID prefers the verified caller, then the body field, then the
// shared anonymous id.
func resolveUserID(c *gin.Context, raw any) (string, bool) {
	if uid := middleware.CallerUID(c); uid != "" {
		return uid, true
	}
	if raw == nil {
		return defaultUserID, true
	}
	s, ok := raw.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultUserID, true
	}
	return s, isValidUserID(s)
}
