package web

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/it-helpdesk/pkg/logger"
)

const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Level   string
	Message string
}

// CSSClass maps the level onto the alert style used by the layout.
func (f Flash) CSSClass() string {
	if f.Level == FlashError {
		return "danger"
	}
	return f.Level
}

// AddFlash queues a message in the session. Flashes are stored as
// "level|message" strings so any session backend can encode them.
func AddFlash(c *gin.Context, level, message string) {
	session := sessions.Default(c)
	session.AddFlash(level + "|" + message)
	if err := session.Save(); err != nil {
		logger.Errorf("failed to save flash: %v", err)
	}
}

// PopFlashes returns and clears the queued messages.
func PopFlashes(c *gin.Context) []Flash {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return nil
	}

	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(); err != nil {
		logger.Errorf("failed to clear flashes: %v", err)
	}

	flashes := make([]Flash, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			continue
		}
		level, message, found := strings.Cut(s, "|")
		if !found {
			level, message = FlashInfo, s
		}
		flashes = append(flashes, Flash{Level: level, Message: message})
	}
	return flashes
}
