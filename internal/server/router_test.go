package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/3dmarket-backend/internal/handlers"
	"github.com/yungbote/3dmarket-backend/internal/middleware"
	"github.com/yungbote/3dmarket-backend/internal/repos"
	"github.com/yungbote/3dmarket-backend/internal/repos/testutil"
	"github.com/yungbote/3dmarket-backend/internal/services"
	"github.com/yungbote/3dmarket-backend/internal/types"
)

func newRouterForTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := testutil.Logger(t)
	db := testutil.DB(t)

	userRepo := repos.NewUserRepo(db, log)
	userTokenRepo := repos.NewUserTokenRepo(db, log)
	assetRepo := repos.NewAssetRepo(db, log)

	pictureService, err := services.NewPictureService(log, t.TempDir())
	if err != nil {
		t.Fatalf("NewPictureService: %v", err)
	}
	avatarService, err := services.NewAvatarService(log, userRepo, t.TempDir(), "")
	if err != nil {
		t.Fatalf("NewAvatarService: %v", err)
	}
	authService := services.NewAuthService(db, log, userRepo, avatarService, userTokenRepo, "test-secret", time.Hour, 24*time.Hour)
	userService := services.NewUserService(db, log, userRepo)
	assetService := services.NewAssetService(db, log, assetRepo, pictureService)

	router := NewRouter(RouterConfig{
		AuthHandler:    handlers.NewAuthHandler(authService),
		AuthMiddleware: middleware.NewAuthMiddleware(log, authService),
		UserHandler:    handlers.NewUserHandler(userService),
		AssetHandler:   handlers.NewAssetHandler(log, assetService, pictureService),
		PictureDir:     pictureService.Dir(),
	})
	return router
}

func registerAndLogin(t *testing.T, r *gin.Engine, email, role string) string {
	t.Helper()

	register := map[string]string{
		"email":    email,
		"name":     "Test User",
		"password": "pw12345",
		"role":     role,
	}
	body, _ := json.Marshal(register)
	req := httptest.NewRequest("POST", "/api/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d (body: %s)", w.Code, w.Body.String())
	}

	login := map[string]string{"email": email, "password": "pw12345"}
	body, _ = json.Marshal(login)
	req = httptest.NewRequest("POST", "/api/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (body: %s)", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Data.AccessToken == "" {
		t.Fatalf("login: empty access token")
	}
	return resp.Data.AccessToken
}

func TestAssetRoutesRequireAuth(t *testing.T) {
	r := newRouterForTest(t)

	req := httptest.NewRequest("GET", "/api/asset", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}

func TestAssetListAllowsUserRole(t *testing.T) {
	r := newRouterForTest(t)
	token := registerAndLogin(t, r, "user@example.com", types.RoleUser)

	req := httptest.NewRequest("GET", "/api/asset", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for USER role, got %d (body: %s)", w.Code, w.Body.String())
	}
}

func TestAssetCreateRejectsUserRole(t *testing.T) {
	r := newRouterForTest(t)
	token := registerAndLogin(t, r, "user2@example.com", types.RoleUser)

	req := httptest.NewRequest("POST", "/api/asset/createAsset", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for USER role, got %d (body: %s)", w.Code, w.Body.String())
	}
}

func TestGetMe(t *testing.T) {
	r := newRouterForTest(t)
	token := registerAndLogin(t, r, "me@example.com", types.RoleAdmin)

	req := httptest.NewRequest("GET", "/api/user", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", w.Code, w.Body.String())
	}

	var resp struct {
		Data types.User `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Email != "me@example.com" {
		t.Fatalf("expected own user, got %+v", resp.Data)
	}
}
