package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	dashboarddomain "github.com/firmdesk/firmdesk-backend/internal/domain/dashboard"
	"github.com/firmdesk/firmdesk-backend/pkg/firmctx"
	"github.com/firmdesk/firmdesk-backend/pkg/logger"
)

// DashboardController gerencia as requisições do painel da firma
type DashboardController struct {
	dashboardRepo dashboarddomain.Repository
	logger        logger.Logger
}

// NewDashboardController cria uma nova instância de DashboardController
func NewDashboardController(dashboardRepo dashboarddomain.Repository, logger logger.Logger) *DashboardController {
	return &DashboardController{
		dashboardRepo: dashboardRepo,
		logger:        logger,
	}
}

// Stats retorna os indicadores consolidados da firma
// @Summary Indicadores do painel
// @Description Retorna contadores e totais financeiros consolidados da firma
// @Tags dashboard
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dashboard.Stats
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /dashboard [get]
func (c *DashboardController) Stats(ctx *gin.Context) {
	firmID := firmctx.GetFirmID(ctx)

	stats, err := c.dashboardRepo.Stats(ctx, firmID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
