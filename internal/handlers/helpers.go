package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/it-helpdesk/internal/errors"
)

// pathID parses the :id route parameter. Malformed ids render the 404 page.
func pathID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		apierrors.NotFound(c)
		return 0, false
	}
	return id, true
}
