package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlashes_RoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var popped []Flash
	r := gin.New()
	r.Use(sessions.Sessions("flash_test", cookie.NewStore([]byte("secret"))))
	r.GET("/set", func(c *gin.Context) {
		AddFlash(c, FlashSuccess, "Saved | really")
		AddFlash(c, FlashError, "Nope")
		c.Status(http.StatusNoContent)
	})
	r.GET("/pop", func(c *gin.Context) {
		popped = PopFlashes(c)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/set", nil))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	// each save rewrites the cookie; the last one holds both flashes
	req := httptest.NewRequest(http.MethodGet, "/pop", nil)
	req.AddCookie(cookies[len(cookies)-1])
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, []Flash{
		{Level: FlashSuccess, Message: "Saved | really"},
		{Level: FlashError, Message: "Nope"},
	}, popped)
}

func TestPopFlashes_NoSession(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, PopFlashes(c))
}
