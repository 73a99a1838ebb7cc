// Package app wires shared HTTP routes for the onboarding dashboard.
package app

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the shared HTTP router.
func NewRouter() (*gin.Engine, error) {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))

	router.GET("/health", Health)

	onboarding := router.Group("/api/onboarding")
	onboarding.POST("/google-workspace", OnboardGoogleWorkspace)
	onboarding.POST("/zoom", OnboardZoom)
	onboarding.POST("/calendly", OnboardCalendly)
	onboarding.POST("/ghl-and-twilio", OnboardGHLAndTwilio)

	api := router.Group("/api")
	api.GET("/closers/links", GetCloserLinks)
	api.GET("/closers/links/grouped", GetCloserLinksGrouped)
	api.GET("/closers/links/by-product", GetCloserLinksByProduct)
	api.GET("/closers/:email/links", GetLinksForCloser)
	api.DELETE("/closers/:email/links", DeleteCloserLinks)
	api.POST("/closers/cache/clear", ClearLinksCache)
	api.DELETE("/plans/:id", DeletePlanByID)
	api.PATCH("/plans/:id", UpdatePlanByID)
	api.POST("/offboard", OffboardCloser)
	api.GET("/phone-numbers", GetPhoneNumbers)

	return router, nil
}
