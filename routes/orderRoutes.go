package routes

import (
	"github.com/fleurly/fleurly-api/controllers"
	"github.com/fleurly/fleurly-api/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine) {
	server.POST("/order", controllers.CreateOrder)
	server.GET("/order", middlewares.Authenticate(), middlewares.RequireAdmin(), controllers.GetOrders)
}
