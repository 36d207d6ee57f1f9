package controllers

import (
	"io"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"lodge-backend/services"
	"lodge-backend/utils"
)

type base64UploadRequest struct {
	Image string `json:"image" binding:"required"`
}

// UploadImage accepts either a multipart form with an "image" file or a JSON
// body carrying a base64 payload, and returns the stored public URL.
func UploadImage(c *gin.Context) {
	subdir := c.DefaultQuery("folder", "lodges")

	if file, err := c.FormFile("image"); err == nil {
		src, err := file.Open()
		if err != nil {
			utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidUpload", "could not read uploaded file")
			return
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidUpload", "could not read uploaded file")
			return
		}

		url, err := services.SaveImageBytes(data, filepath.Ext(file.Filename), subdir)
		if err != nil {
			log.Printf("UploadImage error: %v", err)
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"imageUrl": url})
		return
	}

	var payload base64UploadRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidUpload", "expected multipart image or base64 payload")
		return
	}

	url, err := services.SaveBase64Image(payload.Image, subdir)
	if err != nil {
		log.Printf("UploadImage error: %v", err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"imageUrl": url})
}
