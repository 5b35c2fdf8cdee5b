package routes

import (
	"dartapi/internal/config"
	"dartapi/internal/controllers"
	"dartapi/internal/pkg/dart"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires the disclosure controller onto the public API routes
func SetupRouter(dartClient *dart.DartClient, cfg *config.Config) *gin.Engine {
	disclosureController := controllers.DisclosureController{Dart: dartClient}

	// Set up Gin router
	router := gin.Default()

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})

	router.GET("/", disclosureController.Root)
	router.GET("/list", disclosureController.GetList)
	router.GET("/companies/name/:name", disclosureController.GetCompanyByName)
	router.GET("/companies/code/:company_code", disclosureController.GetCompany)
	router.GET("/document/:rcp_no", disclosureController.GetDocument)
	router.GET("/document/:rcp_no/subdocs", disclosureController.GetSubDocuments)
	router.GET("/finstates/all", disclosureController.GetFinstatesAll)
	router.GET("/dividend/:corp", disclosureController.GetDividend)

	return router
}
