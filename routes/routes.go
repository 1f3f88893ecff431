package routes

import (
	"net/http"
	"time"

	"sitecms/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterContentRoutes registers the CRUD endpoints of one collection under /api.
// Image-bearing collections get the upload middleware on create.
func RegisterContentRoutes(api *gin.RouterGroup, h *handlers.ContentHandler, upload gin.HandlerFunc, withGet bool) {
	res := h.Service.Resource()
	group := api.Group("/" + res.Collection)
	{
		if res.HasImage && upload != nil {
			group.POST("", upload, h.CreateHandler)
		} else {
			group.POST("", h.CreateHandler)
		}
		group.GET("", h.ListHandler)
		if withGet {
			group.GET("/:id", h.GetHandler)
		}
		group.DELETE("/:id", h.DeleteHandler)
	}
}

// RegisterAPIRoutes registers content, dashboard and login endpoints.
func RegisterAPIRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	upload := func(folder string) gin.HandlerFunc {
		if hb.ImageUpload == nil {
			return nil
		}
		return hb.ImageUpload(folder)
	}

	api := r.Group("/api")
	{
		RegisterContentRoutes(api, hb.Services, upload("services"), true)
		RegisterContentRoutes(api, hb.Banners, upload("banners"), false)
		RegisterContentRoutes(api, hb.FAQs, nil, false)
		RegisterContentRoutes(api, hb.Galleries, upload("galleries"), false)

		api.GET("/dashboard-stats", hb.Dashboard.StatsHandler)
		api.POST("/login", hb.Auth.LoginHandler)
	}
}

// RegisterHealthRoutes registers the root, health and metrics endpoints.
func RegisterHealthRoutes(r *gin.Engine, hb *handlers.HandlerBundle, gatherer prometheus.Gatherer) {
	r.GET("/", handlers.RootHandler)
	if hb.Health != nil {
		r.GET("/health", handlers.HealthHandler(hb.Health))
	}
	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, origins []string, gatherer prometheus.Gatherer) {
	r.Use(cors.New(corsConfig(origins)))

	RegisterHealthRoutes(r, hb, gatherer)
	RegisterAPIRoutes(r, hb)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}
