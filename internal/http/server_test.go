package http_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	httptransport "nusavarta/internal/http"
	"nusavarta/internal/infra"
	"nusavarta/internal/modules/sites"
	"nusavarta/internal/service"
)

type echoRelay struct{ lastUser string }

func (e *echoRelay) Handle(_ context.Context, userID, message string) (service.Reply, error) {
	e.lastUser = userID
	return service.Reply{Text: "echo: " + message}, nil
}

type fixedVerifier struct{}

func (fixedVerifier) VerifyIDToken(context.Context, string) (*infra.FirebaseToken, error) {
	return &infra.FirebaseToken{UID: "verified"}, nil
}

func newHandler(t *testing.T, relay *echoRelay, verifier infra.TokenVerifier, required bool) http.Handler {
	gin.SetMode(gin.TestMode)
	return httptransport.NewServer(httptransport.ServerDeps{
		Relay:          relay,
		Sites:          sites.NewCatalog(sites.NewStaticStore(), 0, nil),
		Verifier:       verifier,
		AuthRequired:   required,
		AllowedOrigins: []string{"*"},
		Version:        "test",
		Log:            zaptest.NewLogger(t),
	}).Routes()
}

func do(h http.Handler, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRoutes(t *testing.T) {
	relay := &echoRelay{}
	h := newHandler(t, relay, nil, false)

	w := do(h, http.MethodPost, "/api/chat", `{"message":"halo","userId":"u1"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"reply":"echo: halo"}`, w.Body.String())
	assert.Equal(t, "u1", relay.lastUser)

	w = do(h, http.MethodGet, "/health", "", nil)
	assert.Equal(t, "OK", w.Body.String())

	w = do(h, http.MethodGet, "/api/", "", nil)
	assert.Contains(t, w.Body.String(), `"status":"OK"`)

	w = do(h, http.MethodGet, "/api/story-places", "", nil)
	assert.Contains(t, w.Body.String(), `"allPlaces"`)

	w = do(h, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "go_goroutines"))
}

func TestRoutes_CORSPreflight(t *testing.T) {
	h := newHandler(t, &echoRelay{}, nil, false)
	w := do(h, http.MethodOptions, "/api/chat", "", map[string]string{
		"Origin":                        "https://app.example",
		"Access-Control-Request-Method": http.MethodPost,
	})
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRoutes_AuthRequired(t *testing.T) {
	relay := &echoRelay{}
	h := newHandler(t, relay, fixedVerifier{}, true)

	w := do(h, http.MethodPost, "/api/chat", `{"message":"halo"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(h, http.MethodPost, "/api/chat", `{"message":"halo"}`, map[string]string{"Authorization": "Bearer t"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "verified", relay.lastUser)

	// Public endpoints stay open.
	w = do(h, http.MethodGet, "/api/story-places", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutes_ChatRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := httptransport.NewServer(httptransport.ServerDeps{
		Relay:     &echoRelay{},
		Sites:     sites.NewCatalog(sites.NewStaticStore(), 0, nil),
		ChatRate:  0.001,
		ChatBurst: 1,
		Log:       zaptest.NewLogger(t),
	}).Routes()

	w := do(h, http.MethodPost, "/api/chat", `{"message":"halo"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(h, http.MethodPost, "/api/chat", `{"message":"halo lagi"}`, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)

	// Only chat is limited.
	w = do(h, http.MethodGet, "/api/story-places", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
