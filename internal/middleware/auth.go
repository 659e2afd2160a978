package middleware

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/it-helpdesk/internal/auth"
	"github.com/yukikurage/it-helpdesk/internal/constants"
	apierrors "github.com/yukikurage/it-helpdesk/internal/errors"
	"github.com/yukikurage/it-helpdesk/internal/models"
	"github.com/yukikurage/it-helpdesk/internal/services"
	"github.com/yukikurage/it-helpdesk/pkg/logger"
)

// UserLoader resolves the user stored in the session.
type UserLoader interface {
	GetUser(id uint64) (*models.User, error)
}

// LoadUser resolves the session's user id into the current user. Sessions
// pointing at a deleted or deactivated account are cleared.
func LoadUser(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := sessionUserID(session.Get(constants.ContextKeyUserID))
		if !ok {
			c.Next()
			return
		}

		user, err := users.GetUser(userID)
		switch {
		case err == nil && user.IsActive:
			c.Set(constants.ContextKeyUserID, user.ID)
			c.Set(constants.ContextKeyCurrentUser, user)
		case err == nil || errors.Is(err, services.ErrUserNotFound):
			session.Clear()
			if err := session.Save(); err != nil {
				logger.Errorf("failed to clear session: %v", err)
			}
		default:
			apierrors.InternalError(c, err)
			return
		}

		c.Next()
	}
}

// RequireAuth sends anonymous visitors to the login page, remembering where
// they were going.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			target := constants.LoginPath + "?" + url.Values{
				constants.NextParam: {c.Request.URL.RequestURI()},
			}.Encode()
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin lets only IT administrators through. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.IsAdmin(CurrentUser(c)) {
			apierrors.Forbidden(c, apierrors.MsgAccessDenied, constants.EmployeeDashboardPath)
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, exists := c.Get(constants.ContextKeyCurrentUser)
	if !exists {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return sessionUserID(userID)
}

func sessionUserID(v any) (uint64, bool) {
	switch id := v.(type) {
	case uint64:
		return id, true
	case uint:
		return uint64(id), true
	case int:
		if id < 0 {
			return 0, false
		}
		return uint64(id), true
	case int64:
		if id < 0 {
			return 0, false
		}
		return uint64(id), true
	default:
		return 0, false
	}
}
