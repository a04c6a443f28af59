package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/auth"
)

func newTestRouter(prod bool, origins string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(Config{
		IsProduction: prod,
		ProdOrigins:  origins,
		JWTManager:   auth.NewJWTManager("test-secret", time.Hour),
	})
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(false, "")

	for _, path := range []string{"/v1/cabins", "/v1/guests", "/v1/bookings", "/v1/settings", "/v1/me", "/v1/bookings/stays-today-activity"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestAuthRoutesArePublic(t *testing.T) {
	r := newTestRouter(false, "")

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// binding fails before the nil service is reached
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFileRoutesArePublic(t *testing.T) {
	r := newTestRouter(false, "")

	for _, path := range []string{"/v1/files/not-a-uuid", "/v1/files/not-a-uuid/thumbnail"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		// reaches the handler's id binding instead of the auth check
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestNotFound(t *testing.T) {
	r := newTestRouter(false, "")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v2/cabins", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"route not found"}`, w.Body.String())
}

func TestCORS(t *testing.T) {
	preflight := func(r http.Handler, origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/v1/cabins", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("DevOrigin", func(t *testing.T) {
		w := preflight(newTestRouter(false, ""), "http://localhost:5173")
		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("ProdOrigin", func(t *testing.T) {
		r := newTestRouter(true, "https://dashboard.hotel.test, https://admin.hotel.test")
		w := preflight(r, "https://admin.hotel.test")
		assert.Equal(t, "https://admin.hotel.test", w.Header().Get("Access-Control-Allow-Origin"))

		w = preflight(r, "http://localhost:5173")
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("ProdWithoutOrigins", func(t *testing.T) {
		w := preflight(newTestRouter(true, ""), "https://evil.test")
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, splitOrigins(" https://a.test,,https://b.test "))
	assert.Nil(t, splitOrigins(""))
}

func TestRecoveryJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RecoveryJSON())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}
