package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"contact-api/internal/domain"
	"contact-api/internal/service"
)

func newMiddlewareTokenService(secret string) *service.TokenService {
	return service.NewTokenService(secret, "contact-api", "contact-api-clients", 15*time.Minute)
}

func protectedEngine(tokenSvc *service.TokenService) *gin.Engine {
	r := gin.New()
	r.GET("/protected", JWTAuthMiddleware(tokenSvc), func(c *gin.Context) {
		claims, ok := GetAuthClaims(c)
		if !ok || claims.Subject == "" {
			c.Status(http.StatusUnauthorized)
			return
		}
		c.Status(http.StatusOK)
	})
	return r
}

func TestJWTAuthMiddleware_AllowsValidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokenSvc := newMiddlewareTokenService("secret")
	token, err := tokenSvc.Generate(domain.User{ID: "u1", Email: "user@example.com"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	r := protectedEngine(tokenSvc)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestJWTAuthMiddleware_RejectsMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := protectedEngine(newMiddlewareTokenService("secret"))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuthMiddleware_RejectsMalformedHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := protectedEngine(newMiddlewareTokenService("secret"))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuthMiddleware_RejectsWrongKeyToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	other := newMiddlewareTokenService("other-secret")
	token, err := other.Generate(domain.User{ID: "u1"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	r := protectedEngine(newMiddlewareTokenService("secret"))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
