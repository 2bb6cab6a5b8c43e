package utilities

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"quizhive-backend/internal/model"
)

func newAuthTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	loader := func(id uint) (*model.User, error) {
		if id == 42 {
			return &model.User{ID: 42, Name: "Test User", Email: "test@example.com"}, nil
		}
		return nil, gorm.ErrRecordNotFound
	}

	r := gin.New()
	r.Use(AuthMiddleware("/api/v1", loader))

	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"success": true}) }
	r.POST("/api/v1/auth/login", ok)
	r.POST("/api/v1/auth/register", ok)
	r.POST("/api/v1/auth/refresh", ok)
	// A route that merely ends in an open path must not inherit the exemption.
	r.POST("/api/v1/quiz/auth/login", ok)
	r.GET("/api/v1/dashboard/stats", func(c *gin.Context) {
		user, found := CurrentUser(c)
		if !found {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"id": user.ID}})
	})
	return r
}

func doRequest(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("undecodable response body: %v", err)
	}
	return body.Error
}

func TestAuthMiddlewareOpenRoutes(t *testing.T) {
	r := newAuthTestRouter(t)

	for _, path := range []string{
		"/api/v1/auth/login",
		"/api/v1/auth/register",
		"/api/v1/auth/refresh",
	} {
		if w := doRequest(r, http.MethodPost, path, ""); w.Code != http.StatusOK {
			t.Fatalf("%s must be reachable without a token, got %d", path, w.Code)
		}
	}
}

func TestAuthMiddlewareExemptionIsExact(t *testing.T) {
	r := newAuthTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/v1/quiz/auth/login", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("nested path ending in an open route must still require auth, got %d", w.Code)
	}
	if code := errorCode(t, w); code != "MISSING_TOKEN" {
		t.Fatalf("expected MISSING_TOKEN, got %s", code)
	}
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	r := newAuthTestRouter(t)

	access, _, err := GenerateTokens(&model.User{ID: 42, Name: "Test User", Email: "test@example.com"})
	if err != nil {
		t.Fatalf("failed to generate tokens: %v", err)
	}

	w := doRequest(r, http.MethodGet, "/api/v1/dashboard/stats", access)
	if w.Code != http.StatusOK {
		t.Fatalf("valid token rejected with %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareRejections(t *testing.T) {
	r := newAuthTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/v1/dashboard/stats", "")
	if w.Code != http.StatusUnauthorized || errorCode(t, w) != "MISSING_TOKEN" {
		t.Fatalf("missing token: got %d %s", w.Code, w.Body.String())
	}

	w = doRequest(r, http.MethodGet, "/api/v1/dashboard/stats", "garbage")
	if w.Code != http.StatusUnauthorized || errorCode(t, w) != "INVALID_TOKEN" {
		t.Fatalf("garbage token: got %d %s", w.Code, w.Body.String())
	}

	// Valid signature, but the user no longer exists.
	access, _, err := GenerateTokens(&model.User{ID: 7, Email: "gone@example.com"})
	if err != nil {
		t.Fatalf("failed to generate tokens: %v", err)
	}
	w = doRequest(r, http.MethodGet, "/api/v1/dashboard/stats", access)
	if w.Code != http.StatusUnauthorized || errorCode(t, w) != "USER_NOT_FOUND" {
		t.Fatalf("deleted user: got %d %s", w.Code, w.Body.String())
	}

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	signed, err := expired.SignedString(settings().accessSecret)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	w = doRequest(r, http.MethodGet, "/api/v1/dashboard/stats", signed)
	if w.Code != http.StatusUnauthorized || errorCode(t, w) != "TOKEN_EXPIRED" {
		t.Fatalf("expired token: got %d %s", w.Code, w.Body.String())
	}
}
