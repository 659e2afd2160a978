package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/it-helpdesk/internal/constants"
	"github.com/yukikurage/it-helpdesk/internal/middleware"
	"github.com/yukikurage/it-helpdesk/internal/models"
	"github.com/yukikurage/it-helpdesk/internal/repository"
	"github.com/yukikurage/it-helpdesk/internal/services"
	"github.com/yukikurage/it-helpdesk/internal/testutil"
	"github.com/yukikurage/it-helpdesk/internal/web"
	"github.com/yukikurage/it-helpdesk/pkg/logger"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db          *gorm.DB
	engine      *gin.Engine
	authService *services.AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.UseNop()

	db := testutil.NewDB(t)
	authService := services.NewAuthService(repository.NewUserRepository(db))
	handler := NewAuthHandler(authService)

	renderer, err := web.NewRenderer()
	require.NoError(t, err)

	r := gin.New()
	r.HTMLRender = renderer
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store), middleware.LoadUser(authService))
	r.GET("/", handler.Home)
	r.GET("/login/", handler.LoginPage)
	r.POST("/login/", handler.Login)
	r.POST("/logout/", handler.Logout)

	return authTestEnv{db: db, engine: r, authService: authService}
}

func (env authTestEnv) postLogin(values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_LoginPage(t *testing.T) {
	env := setupAuthTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/login/?next=/profile/", nil)
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="/profile/"`)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)
	testutil.CreateUser(t, env.db, "existing")

	w := env.postLogin(url.Values{"username": {"existing"}, "password": {testutil.Password}})

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, constants.EmployeeDashboardPath, w.Header().Get("Location"))
	require.NotEmpty(t, w.Result().Cookies(), "expected session cookie to be set")

	var user models.User
	require.NoError(t, env.db.Where("username = ?", "existing").First(&user).Error)
	assert.NotNil(t, user.LastLogin)
}

func TestAuthHandler_LoginAdmin(t *testing.T) {
	env := setupAuthTestEnv(t)
	testutil.CreateITAdmin(t, env.db, "boss")

	w := env.postLogin(url.Values{"username": {"boss"}, "password": {testutil.Password}})

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, constants.AdminDashboardPath, w.Header().Get("Location"))
}

func TestAuthHandler_LoginRequiredFields(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.postLogin(url.Values{"username": {"someone"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "This field is required.")
	assert.Empty(t, w.Result().Cookies())
}

func TestAuthHandler_LoginInvalidCredentials(t *testing.T) {
	env := setupAuthTestEnv(t)
	testutil.CreateUser(t, env.db, "existing")

	w := env.postLogin(url.Values{"username": {"existing"}, "password": {"wrong"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Please enter a correct username and password.")
}

func TestAuthHandler_HomeAnonymous(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, constants.LoginPath, w.Header().Get("Location"))
}

func TestAuthHandler_Logout(t *testing.T) {
	env := setupAuthTestEnv(t)
	testutil.CreateUser(t, env.db, "existing")
	login := env.postLogin(url.Values{"username": {"existing"}, "password": {testutil.Password}})

	req := httptest.NewRequest(http.MethodPost, "/logout/", nil)
	for _, c := range login.Result().Cookies() {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, constants.LoginPath, w.Header().Get("Location"))
}

func TestSafeNext(t *testing.T) {
	cases := map[string]bool{
		"":                           false,
		"/employee/dashboard/":       true,
		"/admin/tickets/1/edit/?x=1": true,
		"//evil.example.com":         false,
		"/\\evil.example.com":        false,
		"https://example.com/":       false,
		"relative/path":              false,
	}
	for next, want := range cases {
		assert.Equal(t, want, safeNext(next), next)
	}
}

func TestHomeFor(t *testing.T) {
	assert.Equal(t, constants.EmployeeDashboardPath, homeFor(&models.User{}))
	assert.Equal(t, constants.AdminDashboardPath, homeFor(&models.User{IsStaff: true}))
	assert.Equal(t, constants.AdminDashboardPath, homeFor(&models.User{
		Groups: []models.Group{{Name: constants.ITAdminGroup}},
	}))
}
