package controllers

import (
	"net/http"
	"os"

	"github.com/carewatch/backend/internal/services"
	"github.com/gin-gonic/gin"
)

type PushController struct {
	subscriptions *services.SubscriptionService
	push          *services.PushService
}

func NewPushController(subscriptions *services.SubscriptionService, push *services.PushService) *PushController {
	return &PushController{subscriptions: subscriptions, push: push}
}

// SubscribeRequest mirrors the PushSubscription JSON a browser produces.
type SubscribeRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
	OwnerCode *string `json:"ownerCode"`
}

type NotifyRequest struct {
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func (pc *PushController) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid subscription data", "errors": err.Error()})
		return
	}

	if err := pc.subscriptions.Upsert(req.Endpoint, req.Keys.P256dh, req.Keys.Auth, req.OwnerCode); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Subscription registered"})
}

func (pc *PushController) Notify(c *gin.Context) {
	var req NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request data", "errors": err.Error()})
		return
	}

	result, err := pc.push.Broadcast(req.Title, req.Message)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// VapidPublicKey hands the frontend the key it needs to subscribe.
func (pc *PushController) VapidPublicKey(c *gin.Context) {
	c.String(http.StatusOK, os.Getenv("VAPID_PUBLIC_KEY"))
}
