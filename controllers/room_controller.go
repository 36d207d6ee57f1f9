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

type RoomController struct {
	RoomSvc *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{RoomSvc: svc}
}

type SetStockRequest struct {
	Available *int `json:"available" binding:"required"`
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.validation", "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func (ctrl *RoomController) GetRooms(c *gin.Context) {
	lodgeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	rooms, err := ctrl.RoomSvc.ListByLodge(lodgeID)
	if err != nil {
		log.Printf("GetRooms error: %v", err)
		utils.JSONErrorCode(c, http.StatusInternalServerError, "error.fetchRooms", "could not retrieve rooms")
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	lodgeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	if err := ctrl.RoomSvc.Create(lodgeID, &room); err != nil {
		log.Printf("CreateRoom error: %v", err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Room created successfully", "data": room})
}

func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	roomID, ok := parseIDParam(c, "roomId")
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	room, err := ctrl.RoomSvc.Update(roomID, updates)
	if err != nil {
		log.Printf("UpdateRoom error: %v", err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": room})
}

// SetRoomStock is the explicit admin override for the availability counter;
// regular edits via UpdateRoom cannot touch it.
func (ctrl *RoomController) SetRoomStock(c *gin.Context) {
	roomID, ok := parseIDParam(c, "roomId")
	if !ok {
		return
	}

	var payload SetStockRequest
	if err := c.ShouldBindJSON(&payload); err != nil || payload.Available == nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", "available is required")
		return
	}

	room, err := ctrl.RoomSvc.SetStock(roomID, *payload.Available)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": room})
}

func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	roomID, ok := parseIDParam(c, "roomId")
	if !ok {
		return
	}
	if err := ctrl.RoomSvc.Delete(roomID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "room deleted"})
}
