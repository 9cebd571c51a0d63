package controllers

import (
	"net/http"

	"github.com/carewatch/backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ResidentController struct {
	db *gorm.DB
}

func NewResidentController(db *gorm.DB) *ResidentController {
	return &ResidentController{db: db}
}

type ResidentRequest struct {
	FullName            string `json:"fullName" binding:"required"`
	NeedsWalkingSupport bool   `json:"needsWalkingSupport"`
}

func (rc *ResidentController) GetResidents(c *gin.Context) {
	var residents []models.Resident
	if err := rc.db.Order("full_name asc").Find(&residents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch residents"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": residents})
}

func (rc *ResidentController) CreateResident(c *gin.Context) {
	var req ResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request data", "errors": err.Error()})
		return
	}

	resident := models.Resident{
		FullName:            req.FullName,
		NeedsWalkingSupport: req.NeedsWalkingSupport,
	}
	if err := rc.db.Create(&resident).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create resident"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": resident})
}

func (rc *ResidentController) UpdateResident(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var resident models.Resident
	if err := rc.db.First(&resident, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Resident not found"})
		return
	}

	var req ResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request data", "errors": err.Error()})
		return
	}

	resident.FullName = req.FullName
	resident.NeedsWalkingSupport = req.NeedsWalkingSupport
	if err := rc.db.Save(&resident).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update resident"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": resident})
}
