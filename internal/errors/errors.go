// Package errors renders the error pages and authorization redirects shared
// by the handlers.
package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/it-helpdesk/internal/web"
	"github.com/yukikurage/it-helpdesk/pkg/logger"
	"go.uber.org/zap"
)

const errorPage = "error.html"

// Messages shown to users
const (
	MsgNotFound         = "The page you requested does not exist."
	MsgInternalError    = "Something went wrong on our side. Please try again later."
	MsgAccessDenied     = "You don't have permission to access that page."
	MsgTicketAccess     = "You don't have permission to view this ticket."
	MsgBadRequest       = "The request could not be understood."
	MsgMethodNotAllowed = "This action is not allowed."
)

// PageError is the data rendered by the error page.
type PageError struct {
	Status  int
	Title   string
	Message string
}

var (
	ErrNotFound      = PageError{Status: http.StatusNotFound, Title: "Page not found", Message: MsgNotFound}
	ErrInternalError = PageError{Status: http.StatusInternalServerError, Title: "Server error", Message: MsgInternalError}
	ErrBadRequest    = PageError{Status: http.StatusBadRequest, Title: "Bad request", Message: MsgBadRequest}
	ErrNotAllowed    = PageError{Status: http.StatusMethodNotAllowed, Title: "Method not allowed", Message: MsgMethodNotAllowed}
)

// RespondWithError renders the error page and aborts the chain.
func RespondWithError(c *gin.Context, pageErr PageError) {
	web.Render(c, pageErr.Status, errorPage, gin.H{
		"Title":   pageErr.Title,
		"Message": pageErr.Message,
	})
	c.Abort()
}

// NotFound renders a 404 page.
func NotFound(c *gin.Context) {
	RespondWithError(c, ErrNotFound)
}

// BadRequest renders a 400 page.
func BadRequest(c *gin.Context) {
	RespondWithError(c, ErrBadRequest)
}

// MethodNotAllowed renders a 405 page.
func MethodNotAllowed(c *gin.Context) {
	RespondWithError(c, ErrNotAllowed)
}

// InternalError logs err with the request context and renders a 500 page.
func InternalError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err)
		logger.Error("request failed",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
	}
	RespondWithError(c, ErrInternalError)
}

// Forbidden queues message as an error flash and redirects to target.
func Forbidden(c *gin.Context, message, target string) {
	if message == "" {
		message = MsgAccessDenied
	}
	web.AddFlash(c, web.FlashError, message)
	c.Redirect(http.StatusFound, target)
	c.Abort()
}
