package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"lodge-backend/middleware"
	"lodge-backend/services"
	"lodge-backend/utils"
)

type StatsController struct {
	StatsSvc *services.StatsService
}

func NewStatsController(svc *services.StatsService) *StatsController {
	return &StatsController{StatsSvc: svc}
}

func (ctrl *StatsController) GetDashboard(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	stats, err := ctrl.StatsSvc.Dashboard(c.Request.Context(), claims)
	if err != nil {
		log.Printf("GetDashboard error: %v", err)
		utils.JSONErrorCode(c, http.StatusInternalServerError, "error.dashboard", "could not compute dashboard stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
