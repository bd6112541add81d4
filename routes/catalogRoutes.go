package routes

import (
	"github.com/fleurly/fleurly-api/controllers"
	"github.com/fleurly/fleurly-api/middlewares"
	"github.com/gin-gonic/gin"
)

func CatalogRoutes(server *gin.Engine) {
	server.GET("/flowers", controllers.GetFlowers)
	server.POST("/flowers", middlewares.Authenticate(), middlewares.RequireAdmin(), controllers.CreateFlower)
	server.POST("/categories", middlewares.Authenticate(), middlewares.RequireAdmin(), controllers.CreateCategory)
	server.POST("/flower-images", middlewares.Authenticate(), middlewares.RequireAdmin(), controllers.UploadFlowerImage)
}
