package routes

import (
	"github.com/fleurly/fleurly-api/controllers"
	"github.com/fleurly/fleurly-api/middlewares"
	"github.com/gin-gonic/gin"
)

func AuthRoutes(server *gin.Engine) {
	auth := server.Group("/auth")
	{
		auth.POST("/signup", controllers.Signup)
		auth.POST("/login", controllers.Login)
		auth.POST("/token/refresh", controllers.RefreshToken)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}
	server.PUT("/profile/:clientId", middlewares.Authenticate(), controllers.UpdateProfile)
}
