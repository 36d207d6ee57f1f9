package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lodge-backend/models"
	"lodge-backend/services"
	"lodge-backend/utils"
)

type LodgeController struct {
	LodgeSvc *services.LodgeService
}

func NewLodgeController(svc *services.LodgeService) *LodgeController {
	return &LodgeController{LodgeSvc: svc}
}

type AddReviewRequest struct {
	Rating int `json:"rating" binding:"required"`
}

func (ctrl *LodgeController) GetLodges(c *gin.Context) {
	featuredOnly := c.Query("featured") == "true"
	lodges, err := ctrl.LodgeSvc.List(featuredOnly)
	if err != nil {
		log.Printf("GetLodges error: %v", err)
		utils.JSONErrorCode(c, http.StatusInternalServerError, "error.fetchLodges", "could not retrieve lodges")
		return
	}
	c.JSON(http.StatusOK, lodges)
}

func (ctrl *LodgeController) GetLodgeBySlug(c *gin.Context) {
	lodge, err := ctrl.LodgeSvc.GetBySlug(c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, lodge)
}

func (ctrl *LodgeController) CreateLodge(c *gin.Context) {
	var lodge models.Lodge
	if err := c.ShouldBindJSON(&lodge); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}
	if err := ctrl.LodgeSvc.Create(&lodge); err != nil {
		log.Printf("CreateLodge error: %v", err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Lodge created successfully", "data": lodge})
}

func (ctrl *LodgeController) UpdateLodge(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.validation", "invalid lodge id")
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	lodge, err := ctrl.LodgeSvc.Update(uint(id), updates)
	if err != nil {
		log.Printf("UpdateLodge error: %v", err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": lodge})
}

func (ctrl *LodgeController) DeleteLodge(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.validation", "invalid lodge id")
		return
	}
	if err := ctrl.LodgeSvc.Delete(uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "lodge deleted"})
}

// AddReview accepts a 1-5 star rating and folds it into the lodge aggregate.
func (ctrl *LodgeController) AddReview(c *gin.Context) {
	var payload AddReviewRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", "rating is required")
		return
	}

	lodge, err := ctrl.LodgeSvc.AddReview(c.Param("slug"), payload.Rating)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"rating":      lodge.Rating,
			"reviewCount": lodge.ReviewCount,
		},
	})
}
