package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response bodies keep the legacy frontend contract: success payloads are
// plain objects ({"success":true,...}, {"works":[...]}), failures are
// {"error": message}.

func OK(c *gin.Context, payload gin.H) {
	c.JSON(http.StatusOK, payload)
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func MethodNotAllowed(c *gin.Context) {
	Error(c, http.StatusMethodNotAllowed, "Method not allowed")
}
