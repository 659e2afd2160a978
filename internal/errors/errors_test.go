package errors

import (
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/it-helpdesk/internal/web"
	"github.com/yukikurage/it-helpdesk/pkg/logger"
)

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.UseNop()

	renderer, err := web.NewRenderer()
	require.NoError(t, err)

	r := gin.New()
	r.HTMLRender = renderer
	r.Use(sessions.Sessions("errors_test", cookie.NewStore([]byte("secret"))))
	return r
}

func TestErrorPages(t *testing.T) {
	r := newEngine(t)
	r.GET("/missing", NotFound)
	r.GET("/bad", BadRequest)
	r.GET("/boom", func(c *gin.Context) {
		InternalError(c, stderrors.New("database on fire"))
	})

	cases := []struct {
		path   string
		status int
		title  string
	}{
		{"/missing", http.StatusNotFound, "Page not found"},
		{"/bad", http.StatusBadRequest, "Bad request"},
		{"/boom", http.StatusInternalServerError, "Server error"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
		assert.Equal(t, tc.status, w.Code, tc.path)
		assert.Contains(t, w.Body.String(), tc.title, tc.path)
		assert.NotContains(t, w.Body.String(), "database on fire")
	}
}

func TestForbidden_RedirectsWithFlash(t *testing.T) {
	r := newEngine(t)
	r.GET("/secret", func(c *gin.Context) {
		Forbidden(c, "", "/employee/dashboard/")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/secret", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/employee/dashboard/", w.Header().Get("Location"))
	assert.NotEmpty(t, w.Result().Cookies())
}
