package controllers

import (
	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	Service *services.AnalyticsService
}

func NewAnalyticsController(s *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Service: s}
}

// GET /analytics/shops/:shopId/summary
func (ac *AnalyticsController) ShopSalesSummary(c *gin.Context) {
	shopID, ok := paramID(c, "shopId")
	if !ok {
		return
	}

	out, err := ac.Service.ShopSalesSummary(utils.CurrentActor(c), shopID)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /analytics/staff/performance
func (ac *AnalyticsController) StaffPerformance(c *gin.Context) {
	out, err := ac.Service.StaffPerformance(utils.CurrentActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, out)
}
