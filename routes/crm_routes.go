package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lykr/lykr_backend/controllers"
	"github.com/lykr/lykr_backend/middleware"
)

// RegisterCRMRoutes sets up the campaign, lead and ICP routes. All of them
// require a signed-in account that has finished onboarding.
func RegisterCRMRoutes(e *echo.Echo, db *mongo.Client, crmController *controllers.CRMController) {
	g := e.Group("/api")
	g.Use(middleware.JWTMiddleware())
	g.Use(middleware.RequireOnboardingComplete(db))

	g.GET("/campaigns", crmController.ListCampaigns)
	g.POST("/campaigns", crmController.CreateCampaign)
	g.GET("/leads", crmController.ListLeads)
	g.POST("/leads", crmController.CreateLead)
	g.GET("/icp", crmController.GetICP)
	g.GET("/company", crmController.GetCompany)
	g.GET("/interviews", crmController.ListInterviewRecords)
}
