package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"resume-profile/internal/shared/auth"
	"resume-profile/internal/shared/server/middleware"
)

func meRequest(t *testing.T, repo Repo, claims *auth.Claims) map[string]any {
	t.Helper()
	t.Setenv("ENV", "dev")
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(middleware.Session())
	NewHandler(NewService(repo)).RegisterRoutes(r.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	if claims != nil {
		token, err := auth.SignJWT(*claims)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	body["_status"] = float64(resp.Code)
	return body
}

func TestMeRequiresSession(t *testing.T) {
	body := meRequest(t, NewMemoryRepo(), nil)
	if body["_status"] != float64(http.StatusUnauthorized) {
		t.Fatalf("expected 401, got %v", body["_status"])
	}
}

func TestMeUsesStoredAccount(t *testing.T) {
	repo := NewMemoryRepo()
	if err := repo.Upsert(context.Background(), User{ID: "google:1", Email: "ada@example.com", FullName: "Ada Lovelace"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	body := meRequest(t, repo, &auth.Claims{Name: "stale", RegisteredClaims: jwt.RegisteredClaims{Subject: "google:1"}})
	if body["name"] != "Ada Lovelace" || body["userId"] != "google:1" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestMeFallsBackToClaims(t *testing.T) {
	body := meRequest(t, NewMemoryRepo(), &auth.Claims{
		Email:            "grace@example.com",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "google:2"},
	})
	if body["email"] != "grace@example.com" {
		t.Fatalf("unexpected body %v", body)
	}
	if _, ok := body["name"]; ok {
		t.Fatalf("did not expect name in %v", body)
	}
}
