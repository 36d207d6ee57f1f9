package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"lodge-backend/services"
	"lodge-backend/utils"
)

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
	LodgeID  *uint  `json:"lodge_id"`
}

type UserController struct {
	UserSvc *services.UserService
}

func NewUserController(svc *services.UserService) *UserController {
	return &UserController{UserSvc: svc}
}

func (ctrl *UserController) GetUsers(c *gin.Context) {
	users, err := ctrl.UserSvc.List()
	if err != nil {
		log.Printf("GetUsers error: %v", err)
		utils.JSONErrorCode(c, http.StatusInternalServerError, "error.fetchUsers", "could not retrieve users")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (ctrl *UserController) CreateUser(c *gin.Context) {
	var payload CreateUserRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	user, err := ctrl.UserSvc.Create(payload.Name, payload.Email, payload.Password, payload.Role, payload.LodgeID)
	if err != nil {
		log.Printf("CreateUser error: %v", err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "data": user})
}

func (ctrl *UserController) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.UserSvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "user deleted"})
}
