package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/olgakuzina/task-manager/internal/constants"
	"github.com/olgakuzina/task-manager/internal/flash"
)

// render draws a page, injecting the queued flash notices and the current
// session identity for the navigation bar.
func render(c *gin.Context, code int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["flashes"] = flash.Pop(c)
	data["currentUserID"] = sessionUserID(c)
	c.HTML(code, name, data)
}

// sessionUserID reads the authenticated user id straight from the session,
// so pages outside the auth gate can still show the right navigation.
func sessionUserID(c *gin.Context) uint64 {
	session := sessions.Default(c)
	switch v := session.Get(constants.ContextKeyUserID).(type) {
	case uint64:
		return v
	case uint:
		return uint64(v)
	case int:
		if v < 0 {
			return 0
		}
		return uint64(v)
	default:
		return 0
	}
}

// parseID extracts the numeric :id route parameter. A malformed id gets the
// framework-default 404.
func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		notFound(c)
		return 0, false
	}
	return id, true
}

func notFound(c *gin.Context) {
	c.String(http.StatusNotFound, "Not Found")
}

func serverError(c *gin.Context) {
	c.String(http.StatusInternalServerError, "Internal Server Error")
}
