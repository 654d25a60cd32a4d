package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/micropost/internal/api/handler"
	"github.com/d60-Lab/micropost/internal/api/middleware"
	"github.com/d60-Lab/micropost/internal/auth"
	"github.com/d60-Lab/micropost/internal/cache"
	"github.com/d60-Lab/micropost/internal/model"
	"github.com/d60-Lab/micropost/internal/repository"
	"github.com/d60-Lab/micropost/internal/service"
)

func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Post{}))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	tokens, err := auth.NewTokenService("test-secret", "HS256")
	require.NoError(t, err)

	userSvc := service.NewUserService(repository.NewUserRepository(db))
	postSvc := service.NewPostService(
		repository.NewPostRepository(db),
		cache.NewPostCache(rdb, 5*time.Minute),
	)
	h := handler.NewHandler(userSvc, postSvc, tokens, time.Hour)
	return NewRouter(h, middleware.Auth(tokens, userSvc), zap.NewNop())
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signupToken(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/signup", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "bearer", resp.TokenType)
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

// 端到端：注册→登录→发帖→列表→删帖→列表
func TestScenario(t *testing.T) {
	r := setupServer(t)

	token := signupToken(t, r, "a@x.com", "password1")

	w := doJSON(r, http.MethodPost, "/login", "", gin.H{"email": "a@x.com", "password": "password1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.AccessToken)

	w = doJSON(r, http.MethodPost, "/posts", token, gin.H{"text": "hi"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.JSONEq(t, `{"id":1,"text":"hi"}`, w.Body.String())

	w = doJSON(r, http.MethodGet, "/posts", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"text":"hi"}]`, w.Body.String())

	w = doJSON(r, http.MethodDelete, "/posts/1", token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(r, http.MethodGet, "/posts", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestSignupValidation(t *testing.T) {
	r := setupServer(t)

	t.Run("duplicate email", func(t *testing.T) {
		signupToken(t, r, "dup@x.com", "password1")
		w := doJSON(r, http.MethodPost, "/signup", "", gin.H{"email": "dup@x.com", "password": "password2"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("short password", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/signup", "", gin.H{"email": "b@x.com", "password": "short"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad email", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/signup", "", gin.H{"email": "not-an-email", "password": "password1"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLoginBadCredentials(t *testing.T) {
	r := setupServer(t)
	signupToken(t, r, "a@x.com", "password1")

	w := doJSON(r, http.MethodPost, "/login", "", gin.H{"email": "a@x.com", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

	w = doJSON(r, http.MethodPost, "/login", "", gin.H{"email": "nobody@x.com", "password": "password1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// 缓存已填充后写入仍须立刻可见
func TestListReflectsWritesDespiteCache(t *testing.T) {
	r := setupServer(t)
	token := signupToken(t, r, "a@x.com", "password1")

	w := doJSON(r, http.MethodGet, "/posts", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = doJSON(r, http.MethodPost, "/posts", token, gin.H{"text": "first"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodGet, "/posts", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"text":"first"}]`, w.Body.String())

	// 再次预热缓存后删除
	w = doJSON(r, http.MethodDelete, "/posts/1", token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(r, http.MethodGet, "/posts", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestDeleteNotOwnedOrMissing(t *testing.T) {
	r := setupServer(t)
	tokenA := signupToken(t, r, "a@x.com", "password1")
	tokenB := signupToken(t, r, "b@x.com", "password1")

	w := doJSON(r, http.MethodPost, "/posts", tokenA, gin.H{"text": "mine"})
	require.Equal(t, http.StatusCreated, w.Code)
	var post model.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))

	// 他人帖子与不存在的帖子同样返回 404
	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/posts/%d", post.ID), tokenB, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodDelete, "/posts/9999", tokenA, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 属主的帖子未受影响
	w = doJSON(r, http.MethodGet, "/posts", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mine")
}

func TestPostsRequireAuth(t *testing.T) {
	r := setupServer(t)

	w := doJSON(r, http.MethodGet, "/posts", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/posts", "", gin.H{"text": "hi"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthz(t *testing.T) {
	r := setupServer(t)
	w := doJSON(r, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
