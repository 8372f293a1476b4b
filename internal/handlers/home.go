package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Index renders the landing page.
func Index(c *gin.Context) {
	render(c, http.StatusOK, "index.html", nil)
}
