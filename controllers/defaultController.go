package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Fleurly API 🌸. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create a client account
- POST "/auth/login" - Access a client account
- POST "/auth/token/refresh" - Exchange a refresh token for a new access token
- POST "/auth/forgot-password" - Request a password reset code
- POST "/auth/reset-password" - Verify a reset code and set a new password
- PUT "/profile/:clientId" - Update a client profile (authenticated)

CATALOG
- GET "/flowers" - Get all flowers and categories
- POST "/flowers" - Create a new flower (admin)
- POST "/categories" - Create a new category (admin)
- POST "/flower-images" - Upload a flower image (admin)

ORDER
- POST "/order" - Place a new order
- GET "/order" - Retrieve all orders (admin)`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
