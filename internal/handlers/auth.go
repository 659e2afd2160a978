package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/it-helpdesk/internal/auth"
	"github.com/yukikurage/it-helpdesk/internal/constants"
	apierrors "github.com/yukikurage/it-helpdesk/internal/errors"
	"github.com/yukikurage/it-helpdesk/internal/forms"
	"github.com/yukikurage/it-helpdesk/internal/middleware"
	"github.com/yukikurage/it-helpdesk/internal/models"
	"github.com/yukikurage/it-helpdesk/internal/services"
	"github.com/yukikurage/it-helpdesk/internal/web"
	"github.com/yukikurage/it-helpdesk/pkg/logger"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Home sends visitors to the page matching their role.
func (h *AuthHandler) Home(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, constants.LoginPath)
		return
	}
	c.Redirect(http.StatusFound, homeFor(user))
}

// LoginPage shows the login form.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if user := middleware.CurrentUser(c); user != nil {
		c.Redirect(http.StatusFound, homeFor(user))
		return
	}

	web.Render(c, http.StatusOK, "login.html", gin.H{
		"Form": &forms.LoginForm{},
		"Next": c.Query(constants.NextParam),
	})
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	form := &forms.LoginForm{}
	next := c.PostForm(constants.NextParam)

	rerender := func(errs forms.Errors) {
		web.Render(c, http.StatusOK, "login.html", gin.H{
			"Form":   form,
			"Next":   next,
			"Errors": errs,
		})
	}

	if errs := forms.Bind(c, form); errs != nil {
		rerender(errs)
		return
	}

	user, err := h.authService.Login(form.ToInput())
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			errs := forms.Errors{}
			errs.Add(forms.NonFieldKey, forms.MsgInvalidLogin)
			rerender(errs)
			return
		}
		apierrors.InternalError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Clear()
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, err)
		return
	}
	logger.Infof("user %s logged in", user.Username)

	if safeNext(next) {
		c.Redirect(http.StatusFound, next)
		return
	}
	c.Redirect(http.StatusFound, homeFor(user))
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, err)
		return
	}
	c.Redirect(http.StatusFound, constants.LoginPath)
}

func homeFor(user *models.User) string {
	if auth.IsAdmin(user) {
		return constants.AdminDashboardPath
	}
	return constants.EmployeeDashboardPath
}

// safeNext accepts only local absolute paths.
func safeNext(next string) bool {
	if next == "" || !strings.HasPrefix(next, "/") {
		return false
	}
	return !strings.HasPrefix(next, "//") && !strings.HasPrefix(next, "/\\")
}
