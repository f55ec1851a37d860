package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/social-api/pkg/jwt"
)

func newAuthRouter(tokens *jwt.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", JWTAuth(tokens), func(c *gin.Context) {
		c.String(http.StatusOK, SubjectID(c))
	})
	return r
}

func TestJWTAuth(t *testing.T) {
	tokens := jwt.NewManager("secret", time.Hour)
	r := newAuthRouter(tokens)

	token, err := tokens.Sign("user-1")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", w.Body.String())
}

func TestJWTAuth_Rejects(t *testing.T) {
	tokens := jwt.NewManager("secret", time.Hour)
	r := newAuthRouter(tokens)

	cases := map[string]string{
		"missing":      "",
		"no prefix":    "token",
		"bad token":    "Bearer garbage",
		"wrong secret": "Bearer " + mustSign(t, jwt.NewManager("other", time.Hour)),
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func mustSign(t *testing.T, m *jwt.Manager) string {
	t.Helper()
	token, err := m.Sign("user-1")
	require.NoError(t, err)
	return token
}
