package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/carewatch/backend/internal/models"
	"github.com/carewatch/backend/internal/services"
	"github.com/gin-gonic/gin"
)

type IncidentController struct {
	incidents *services.IncidentService
	push      *services.PushService
}

func NewIncidentController(incidents *services.IncidentService, push *services.PushService) *IncidentController {
	return &IncidentController{incidents: incidents, push: push}
}

type CreateIncidentRequest struct {
	Location     string     `json:"location"`
	OccurredAt   *time.Time `json:"occurredAt"`
	ResidentName string     `json:"residentName"`
	Detail       string     `json:"detail"`
	IsFall       bool       `json:"isFall"`
	InjuryLevel  int        `json:"injuryLevel"`
	// Notify controls whether creation also broadcasts a push alert.
	Notify bool `json:"notify"`
}

type UpdateIncidentRequest struct {
	Location     *string    `json:"location"`
	OccurredAt   *time.Time `json:"occurredAt"`
	ResidentName *string    `json:"residentName"`
	Detail       *string    `json:"detail"`
	State        *string    `json:"state"`
	IsFall       *bool      `json:"isFall"`
	InjuryLevel  *int       `json:"injuryLevel"`
}

type AttendIncidentRequest struct {
	Detail       string `json:"detail"`
	AttendedBy   string `json:"attendedBy"`
	ResidentName string `json:"residentName"`
}

func (ic *IncidentController) CreateIncident(c *gin.Context) {
	var req CreateIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request data", "errors": err.Error()})
		return
	}

	incident, err := ic.incidents.Create(services.CreateIncidentInput{
		Location:     req.Location,
		OccurredAt:   req.OccurredAt,
		ResidentName: req.ResidentName,
		Detail:       req.Detail,
		IsFall:       req.IsFall,
		InjuryLevel:  req.InjuryLevel,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Alert staff devices about the new incident. Best effort: delivery
	// problems never fail the creation.
	if req.Notify {
		title := "New incident"
		if incident.IsFall {
			title = "Fall detected"
		}
		ic.push.Broadcast(title, incident.Location+" - "+incident.ResidentName)
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": incident})
}

func (ic *IncidentController) GetIncidents(c *gin.Context) {
	filter := services.IncidentFilter{
		Date:     c.Query("date"),
		State:    c.Query("state"),
		Location: c.Query("location"),
	}

	incidents, err := ic.incidents.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": incidents})
}

func (ic *IncidentController) GetIncident(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	incident, err := ic.incidents.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": incident})
}

func (ic *IncidentController) UpdateIncident(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request data", "errors": err.Error()})
		return
	}

	patch := services.UpdateIncidentInput{
		Location:     req.Location,
		OccurredAt:   req.OccurredAt,
		ResidentName: req.ResidentName,
		Detail:       req.Detail,
		IsFall:       req.IsFall,
		InjuryLevel:  req.InjuryLevel,
	}
	if req.State != nil {
		state := models.IncidentState(*req.State)
		patch.State = &state
	}

	incident, err := ic.incidents.Update(id, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": incident})
}

func (ic *IncidentController) AttendIncident(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req AttendIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request data", "errors": err.Error()})
		return
	}

	// Default the attendant to the logged-in account.
	if req.AttendedBy == "" {
		req.AttendedBy = c.GetString("username")
	}

	incident, err := ic.incidents.MarkAttended(id, req.Detail, req.AttendedBy, req.ResidentName)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": incident})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}
