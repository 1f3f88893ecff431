package handlers

import (
	"sitecms/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Content endpoints.
	Services  *ContentHandler
	Banners   *ContentHandler
	FAQs      *ContentHandler
	Galleries *ContentHandler

	Dashboard *DashboardHandler
	Auth      *AuthHandler

	// Health is optional; without it /health is not registered.
	Health *utils.HealthMonitor

	// ImageUpload builds the upload middleware for a media folder.
	ImageUpload func(folder string) gin.HandlerFunc
}
