package handlers

import (
	"net/http"

	"sitecms/models"
	"sitecms/services/content"
	"sitecms/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DashboardHandler reports document counts for the admin dashboard.
type DashboardHandler struct {
	Services  content.ContentService
	Banners   content.ContentService
	FAQs      content.ContentService
	Galleries content.ContentService
	Logger    *zap.Logger
}

// StatsHandler handles GET /api/dashboard-stats. The four counts are taken independently.
func (h *DashboardHandler) StatsHandler(c *gin.Context) {
	var stats models.DashboardStats
	g, ctx := errgroup.WithContext(c.Request.Context())

	count := func(svc content.ContentService, dst *int64) {
		g.Go(func() error {
			n, err := svc.Count(ctx)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}
	count(h.Services, &stats.Services)
	count(h.Banners, &stats.Banners)
	count(h.FAQs, &stats.FAQs)
	count(h.Galleries, &stats.Galleries)

	if err := g.Wait(); err != nil {
		h.Logger.Error("StatsHandler: failed to count documents", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.Respond(c, http.StatusOK, stats)
}
