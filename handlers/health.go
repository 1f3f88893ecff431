package handlers

import (
	"net/http"

	"sitecms/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles GET /health with the latest dependency snapshot.
func HealthHandler(monitor *utils.HealthMonitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := monitor.Status()
		code := http.StatusOK
		if !status.Healthy {
			code = http.StatusServiceUnavailable
		}
		utils.Respond(c, code, status)
	}
}

// RootHandler handles GET /.
func RootHandler(c *gin.Context) {
	c.String(http.StatusOK, "Site content API is running")
}
