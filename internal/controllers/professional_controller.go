package controllers

import (
	"net/http"

	"github.com/carewatch/backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProfessionalController struct {
	db *gorm.DB
}

func NewProfessionalController(db *gorm.DB) *ProfessionalController {
	return &ProfessionalController{db: db}
}

type ProfessionalRequest struct {
	Code     string `json:"code" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Schedule string `json:"schedule"`
	Status   string `json:"status"`
}

func (pc *ProfessionalController) GetProfessionals(c *gin.Context) {
	query := pc.db.Order("code asc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var professionals []models.Professional
	if err := query.Find(&professionals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch professionals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": professionals})
}

func (pc *ProfessionalController) CreateProfessional(c *gin.Context) {
	var req ProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request data", "errors": err.Error()})
		return
	}

	status := models.ProfessionalStatus(req.Status)
	if status == "" {
		status = models.ProfessionalActive
	}
	if status != models.ProfessionalActive && status != models.ProfessionalInactive {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Status must be ACTIVE or INACTIVE"})
		return
	}

	// Codes are human-assigned (P001, P002, ...) and must stay unique.
	var existing models.Professional
	if err := pc.db.Where("code = ?", req.Code).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Professional code already exists"})
		return
	}

	professional := models.Professional{
		Code:     req.Code,
		Name:     req.Name,
		Schedule: req.Schedule,
		Status:   status,
	}
	if err := pc.db.Create(&professional).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create professional"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": professional})
}

func (pc *ProfessionalController) UpdateProfessional(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var professional models.Professional
	if err := pc.db.First(&professional, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Professional not found"})
		return
	}

	var req ProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request data", "errors": err.Error()})
		return
	}

	if req.Status != "" {
		status := models.ProfessionalStatus(req.Status)
		if status != models.ProfessionalActive && status != models.ProfessionalInactive {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Status must be ACTIVE or INACTIVE"})
			return
		}
		professional.Status = status
	}
	professional.Code = req.Code
	professional.Name = req.Name
	professional.Schedule = req.Schedule

	if err := pc.db.Save(&professional).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update professional"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": professional})
}
