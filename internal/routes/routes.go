package routes

import (
	"github.com/carewatch/backend/internal/controllers"
	"github.com/carewatch/backend/internal/middleware"
	"github.com/carewatch/backend/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Initialize services
	authService := services.NewAuthService(db)
	incidentService := services.NewIncidentService(db)
	subscriptionService := services.NewSubscriptionService(db)
	pushService := services.NewPushService(subscriptionService)

	// Initialize controllers
	authController := controllers.NewAuthController(db, authService)
	userController := controllers.NewUserController(db)
	incidentController := controllers.NewIncidentController(incidentService, pushService)
	pushController := controllers.NewPushController(subscriptionService, pushService)
	residentController := controllers.NewResidentController(db)
	professionalController := controllers.NewProfessionalController(db)

	// API routes
	api := r.Group("/api/v1")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authController.Login)
		}

		// The frontend needs the VAPID public key before it can subscribe.
		api.GET("/push/key", pushController.VapidPublicKey)

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(authService))
		{
			protected.GET("/auth/me", authController.Me)

			// Incidents
			incidents := protected.Group("/incidents")
			{
				incidents.POST("", incidentController.CreateIncident)
				incidents.GET("", incidentController.GetIncidents)
				incidents.GET("/:id", incidentController.GetIncident)
				incidents.PUT("/:id", incidentController.UpdateIncident)
				incidents.POST("/:id/attend", incidentController.AttendIncident)
			}

			// Push notifications
			push := protected.Group("/push")
			{
				push.POST("/subscribe", pushController.Subscribe)
				push.POST("/notify", pushController.Notify)
			}

			// Residents
			residents := protected.Group("/residents")
			{
				residents.GET("", residentController.GetResidents)
				residents.POST("", residentController.CreateResident)
				residents.PUT("/:id", residentController.UpdateResident)
			}

			// Professionals
			professionals := protected.Group("/professionals")
			{
				professionals.GET("", professionalController.GetProfessionals)
				professionals.POST("", professionalController.CreateProfessional)
				professionals.PUT("/:id", professionalController.UpdateProfessional)
			}

			// Account management
			protected.PUT("/users/password", userController.ChangePassword)

			// Admin routes
			admin := protected.Group("/users")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("", userController.GetUsers)
				admin.POST("", userController.CreateUser)
			}
		}
	}
}
