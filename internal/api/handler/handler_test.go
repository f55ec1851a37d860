package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-api/config"
	"github.com/d60-Lab/social-api/internal/api/handler"
	"github.com/d60-Lab/social-api/internal/api/router"
	"github.com/d60-Lab/social-api/internal/cache"
	"github.com/d60-Lab/social-api/internal/middleware"
	"github.com/d60-Lab/social-api/internal/model"
	"github.com/d60-Lab/social-api/internal/repository"
	"github.com/d60-Lab/social-api/internal/service"
	"github.com/d60-Lab/social-api/pkg/avatar"
	"github.com/d60-Lab/social-api/pkg/jwt"
	"github.com/d60-Lab/social-api/pkg/response"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	r, _ := newTestStack(t)
	return r
}

// newTestStack 额外暴露上传目录，供断言落盘行为
func newTestStack(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Post{}, &model.Comment{}, &model.Like{}, &model.Follow{},
	))

	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.Server.Name = "social-api-test"
	cfg.Upload.Dir = t.TempDir()

	avatars, err := avatar.NewGenerator(cfg.Upload.Dir)
	require.NoError(t, err)
	tokens := jwt.NewManager("test-secret", time.Hour)

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	followRepo := repository.NewFollowRepository(db)

	var noCache *cache.FollowerCache
	h := handler.New(
		service.NewUserService(userRepo, followRepo, tokens, avatars),
		service.NewPostService(postRepo),
		service.NewCommentService(commentRepo, postRepo),
		service.NewLikeService(likeRepo, postRepo),
		service.NewRelationshipService(followRepo, userRepo, noCache),
		avatars,
	)
	return router.New(cfg, h, middleware.JWTAuth(tokens)), cfg.Upload.Dir
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w.Code, env
}

func register(t *testing.T, r *gin.Engine, email, name string) model.User {
	t.Helper()
	code, env := do(t, r, http.MethodPost, "/api/register", "", gin.H{
		"email": email, "password": "password", "name": name,
	})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, response.CodeOK, env.Code)
	var u model.User
	require.NoError(t, json.Unmarshal(env.Data, &u))
	return u
}

func login(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	code, env := do(t, r, http.MethodPost, "/api/login", "", gin.H{
		"email": email, "password": "password",
	})
	require.Equal(t, http.StatusOK, code)
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func TestRegisterValidation(t *testing.T) {
	r := newTestRouter(t)

	code, _ := do(t, r, http.MethodPost, "/api/register", "", gin.H{"email": "a@example.com"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, r, http.MethodPost, "/api/register", "", gin.H{
		"email": "not-an-email", "password": "password", "name": "Al",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	register(t, r, "a@example.com", "Al")

	// 已存在：HTTP 200 + 业务错误码
	code, env := do(t, r, http.MethodPost, "/api/register", "", gin.H{
		"email": "a@example.com", "password": "password", "name": "Al",
	})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, response.CodeUserExists, env.Code)
}

func TestLoginValidation(t *testing.T) {
	r := newTestRouter(t)
	register(t, r, "a@example.com", "Al")

	code, _ := do(t, r, http.MethodPost, "/api/login", "", gin.H{"email": "a@example.com"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env := do(t, r, http.MethodPost, "/api/login", "", gin.H{
		"email": "a@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid login or password", env.Message)

	// 未知邮箱与错误密码不可区分
	code, env2 := do(t, r, http.MethodPost, "/api/login", "", gin.H{
		"email": "nobody@example.com", "password": "password",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, env.Message, env2.Message)
}

func TestAuthRequired(t *testing.T) {
	r := newTestRouter(t)
	for _, path := range []string{"/api/current", "/api/posts"} {
		code, _ := do(t, r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, code, path)
	}
}

// 注册→登录→发帖→他人删帖被拒→关注/取关 全链路
func TestEndToEndScenario(t *testing.T) {
	r := newTestRouter(t)

	al := register(t, r, "a@example.com", "Al")
	bo := register(t, r, "b@example.com", "Bo")
	alToken := login(t, r, "a@example.com")
	boToken := login(t, r, "b@example.com")

	// current：新用户没有任何关注边
	code, env := do(t, r, http.MethodGet, "/api/current", alToken, nil)
	require.Equal(t, http.StatusOK, code)
	var cur model.User
	require.NoError(t, json.Unmarshal(env.Data, &cur))
	assert.Equal(t, al.ID, cur.ID)
	assert.Empty(t, cur.Followers)
	assert.Empty(t, cur.Following)

	// Al 发帖
	code, env = do(t, r, http.MethodPost, "/api/posts", alToken, gin.H{"content": "hi"})
	require.Equal(t, http.StatusOK, code)
	var post model.Post
	require.NoError(t, json.Unmarshal(env.Data, &post))
	assert.Equal(t, al.ID, post.AuthorID)

	// Bo 删 Al 的帖子被拒，帖子还在
	code, _ = do(t, r, http.MethodDelete, "/api/posts/"+post.ID, boToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = do(t, r, http.MethodGet, "/api/posts/"+post.ID, boToken, nil)
	assert.Equal(t, http.StatusOK, code)

	// Bo 评论与点赞
	code, env = do(t, r, http.MethodPost, "/api/comments", boToken, gin.H{"postId": post.ID, "content": "nice"})
	require.Equal(t, http.StatusOK, code)
	var cm model.Comment
	require.NoError(t, json.Unmarshal(env.Data, &cm))
	assert.Equal(t, bo.ID, cm.UserID)

	code, env = do(t, r, http.MethodPost, "/api/likes", boToken, gin.H{"postId": post.ID})
	require.Equal(t, http.StatusOK, code)
	code, _ = do(t, r, http.MethodPost, "/api/likes", boToken, gin.H{"postId": post.ID})
	assert.Equal(t, http.StatusConflict, code)

	// 列表对 Bo 标记 likedByUser
	code, env = do(t, r, http.MethodGet, "/api/posts", boToken, nil)
	require.Equal(t, http.StatusOK, code)
	var posts []model.Post
	require.NoError(t, json.Unmarshal(env.Data, &posts))
	require.Len(t, posts, 1)
	assert.True(t, posts[0].LikedByUser)

	// 关注 → isFollowing 翻转
	code, env = do(t, r, http.MethodPost, "/api/follow", alToken, gin.H{"followingId": bo.ID})
	require.Equal(t, http.StatusOK, code)
	var edge model.Follow
	require.NoError(t, json.Unmarshal(env.Data, &edge))

	code, _ = do(t, r, http.MethodPost, "/api/follow", alToken, gin.H{"followingId": bo.ID})
	assert.Equal(t, http.StatusConflict, code)
	code, _ = do(t, r, http.MethodPost, "/api/follow", alToken, gin.H{"followingId": al.ID})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = do(t, r, http.MethodGet, "/api/users/"+bo.ID, alToken, nil)
	require.Equal(t, http.StatusOK, code)
	var profile struct {
		IsFollowing bool `json:"isFollowing"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.True(t, profile.IsFollowing)

	// Bo 不能替 Al 取关
	code, _ = do(t, r, http.MethodDelete, "/api/unfollow/"+edge.ID, boToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = do(t, r, http.MethodDelete, "/api/unfollow/"+edge.ID, alToken, nil)
	require.Equal(t, http.StatusOK, code)
	code, env = do(t, r, http.MethodGet, "/api/users/"+bo.ID, alToken, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.False(t, profile.IsFollowing)

	// 作者本人删帖成功
	code, _ = do(t, r, http.MethodDelete, "/api/posts/"+post.ID, alToken, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = do(t, r, http.MethodGet, "/api/posts/"+post.ID, alToken, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestUpdateUserMultipart(t *testing.T) {
	r, uploads := newTestStack(t)
	al := register(t, r, "a@example.com", "Al")
	register(t, r, "b@example.com", "Bo")
	alToken := login(t, r, "a@example.com")
	boToken := login(t, r, "b@example.com")

	countUploads := func(t *testing.T) int {
		entries, err := os.ReadDir(uploads)
		require.NoError(t, err)
		return len(entries)
	}

	form := func(t *testing.T, fields map[string]string, fileName string) (*bytes.Buffer, string) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		for k, v := range fields {
			require.NoError(t, mw.WriteField(k, v))
		}
		if fileName != "" {
			fw, err := mw.CreateFormFile("avatar", fileName)
			require.NoError(t, err)
			_, err = fw.Write([]byte("png-bytes"))
			require.NoError(t, err)
		}
		require.NoError(t, mw.Close())
		return &buf, mw.FormDataContentType()
	}

	send := func(t *testing.T, token, userID string, body *bytes.Buffer, contentType string) (int, envelope) {
		req := httptest.NewRequest(http.MethodPut, "/api/users/"+userID, body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		var env envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		return w.Code, env
	}

	// 非本人 403
	body, ct := form(t, map[string]string{"bio": "hacked"}, "")
	code, _ := send(t, boToken, al.ID, body, ct)
	assert.Equal(t, http.StatusForbidden, code)

	// 非本人带头像同样 403，且上传目录没有新增文件
	before := countUploads(t)
	body, ct = form(t, nil, "sneaky.png")
	code, _ = send(t, boToken, al.ID, body, ct)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, before, countUploads(t))

	// 非图片扩展名 400，不落盘
	body, ct = form(t, nil, "evil.exe")
	code, _ = send(t, alToken, al.ID, body, ct)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, before, countUploads(t))

	// 部分更新：没传头像时引用不变
	body, ct = form(t, map[string]string{"bio": "hello", "location": "Berlin"}, "")
	code, env := send(t, alToken, al.ID, body, ct)
	require.Equal(t, http.StatusOK, code)
	var got model.User
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "hello", got.Bio)
	assert.Equal(t, "Berlin", got.Location)
	assert.Equal(t, "Al", got.Name)
	assert.Equal(t, al.AvatarURL, got.AvatarURL)

	// 传头像则替换引用
	body, ct = form(t, nil, "pic.png")
	code, env = send(t, alToken, al.ID, body, ct)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.NotEqual(t, al.AvatarURL, got.AvatarURL)
	assert.Contains(t, got.AvatarURL, "/uploads/")

	// 占用他人邮箱 409
	body, ct = form(t, map[string]string{"email": "b@example.com"}, "")
	code, _ = send(t, alToken, al.ID, body, ct)
	assert.Equal(t, http.StatusConflict, code)

	// 非法生日 400
	body, ct = form(t, map[string]string{"dateOfBirth": "05/01/1990"}, "")
	code, _ = send(t, alToken, al.ID, body, ct)
	assert.Equal(t, http.StatusBadRequest, code)
}
