package controllers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/fleurly/fleurly-api/initializers"
	"github.com/fleurly/fleurly-api/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// Default cost for bcrypt password hashing
	bcryptCost = 10

	// Fallback token lifetimes when the env vars are unset
	defaultAccessTokenTTL  = time.Hour * 24
	defaultRefreshTokenTTL = time.Hour * 24 * 30

	// Standard response messages
	msgInvalidInput          = "invalid input"
	msgClientAlreadyExists   = "user with this email already exists"
	msgFailedToHashPassword  = "failed to hash password"
	msgInvalidCredentials    = "invalid email or password"
	msgFailedToGenerateToken = "failed to generate token"
	msgInternalServerError   = "Internal server error"
	msgClientNotFound        = "user with this email does not exist"
	msgInvalidRefreshToken   = "invalid or expired refresh token"
	msgProfileUpdated        = "Profile updated successfully."
	msgProfileNotFound       = "profile not found"
	msgProfileForbidden      = "you can only update your own profile"
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func tokenTTL(envKey string, fallback time.Duration) time.Duration {
	hours, err := strconv.Atoi(os.Getenv(envKey))
	if err != nil || hours <= 0 {
		return fallback
	}
	return time.Duration(hours) * time.Hour
}

func generateToken(client models.Client, tokenType string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"client_id": client.ID,
		"email":     client.Email,
		"role":      client.Role,
		"typ":       tokenType,
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(ttl).Unix(),
	})

	jwtSecret := os.Getenv("JWT_SECRET")
	return token.SignedString([]byte(jwtSecret))
}

func generateAccessToken(client models.Client) (string, error) {
	return generateToken(client, "access", tokenTTL("ACCESS_TOKEN_TTL_HOURS", defaultAccessTokenTTL))
}

func generateRefreshToken(client models.Client) (string, error) {
	return generateToken(client, "refresh", tokenTTL("REFRESH_TOKEN_TTL_HOURS", defaultRefreshTokenTTL))
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// checkClientExists is a variable so tests can exercise the unique-constraint
// path that backstops it.
var checkClientExists = func(email string) (bool, error) {
	var existingClient models.Client
	result := initializers.DB.Where("email = ?", email).Find(&existingClient)
	return result.RowsAffected > 0, result.Error
}

func findClientByEmail(email string) (models.Client, error) {
	var client models.Client
	result := initializers.DB.Where("email = ?", email).First(&client)
	return client, result.Error
}

func clientProfile(client models.Client) gin.H {
	return gin.H{
		"id":        client.ID,
		"email":     client.Email,
		"firstName": client.FirstName,
		"lastName":  client.LastName,
		"phone":     client.Phone,
		"address":   client.Address,
		"image":     client.Image,
	}
}

// Signup registers a new account: a User identity row plus its linked Client
// profile, each with its own bcrypt hash of the submitted password.
func Signup(ctx *gin.Context) {
	var signupData models.SignupData
	if err := ctx.ShouldBindJSON(&signupData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	exists, err := checkClientExists(signupData.Email)
	if err != nil {
		log.Println("Database error during client check:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if exists {
		sendErrorResponse(ctx, http.StatusBadRequest, msgClientAlreadyExists)
		return
	}

	userPassword, err := hashPassword(signupData.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}
	clientPassword, err := hashPassword(signupData.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	user := models.User{
		Username: signupData.FirstName + " " + signupData.LastName,
		Email:    signupData.Email,
		Password: userPassword,
	}

	tx := initializers.DB.Begin()
	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		log.Println("User creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	client := models.Client{
		FirstName: signupData.FirstName,
		LastName:  signupData.LastName,
		Phone:     signupData.Phone,
		Address:   signupData.Address,
		Email:     signupData.Email,
		Password:  clientPassword,
		Role:      models.RoleUser,
		UserID:    &user.ID,
	}
	if err := tx.Create(&client).Error; err != nil {
		tx.Rollback()
		// A concurrent signup can slip past the exists check; the unique
		// index on email is the backstop.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			sendErrorResponse(ctx, http.StatusBadRequest, msgClientAlreadyExists)
			return
		}
		log.Println("Client creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		log.Println("Signup commit error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"client": clientProfile(client)})
}

// Login authenticates a client and issues an access/refresh token pair.
// Unknown email and wrong password share one message on purpose.
func Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	client, err := findClientByEmail(loginData.Email)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	if err := comparePasswords(client.Password, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	accessToken, err := generateAccessToken(client)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	refreshToken, err := generateRefreshToken(client)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"access":  accessToken,
		"refresh": refreshToken,
		"client":  clientProfile(client),
	})
}

// RefreshToken exchanges a valid refresh token for a fresh access token.
func RefreshToken(ctx *gin.Context) {
	var refreshData struct {
		Refresh string `json:"refresh" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&refreshData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	claims, err := parseToken(refreshData.Refresh)
	if err != nil || claims["typ"] != "refresh" {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidRefreshToken)
		return
	}

	clientID, ok := claims["client_id"].(float64)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidRefreshToken)
		return
	}

	var client models.Client
	if result := initializers.DB.First(&client, uint(clientID)); result.Error != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidRefreshToken)
		return
	}

	accessToken, err := generateAccessToken(client)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"access": accessToken})
}

// UpdateProfile rewrites a client's mutable fields. The authenticated token's
// subject must match the target client id.
func UpdateProfile(ctx *gin.Context) {
	clientId, err := strconv.Atoi(ctx.Param("clientId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse client id")
		return
	}

	userClaims, exists := ctx.Get("user")
	if !exists {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}
	claims := userClaims.(jwt.MapClaims)
	tokenClientID, ok := claims["client_id"].(float64)
	if !ok || int(tokenClientID) != clientId {
		sendErrorResponse(ctx, http.StatusForbidden, msgProfileForbidden)
		return
	}

	var profileData models.ProfileUpdateData
	if err := ctx.ShouldBindJSON(&profileData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	result := initializers.DB.Model(&models.Client{}).
		Where("id = ?", clientId).
		Updates(map[string]any{
			"email":      profileData.Email,
			"first_name": profileData.FirstName,
			"last_name":  profileData.LastName,
			"phone":      profileData.Phone,
			"address":    profileData.Address,
		})

	if result.Error != nil {
		log.Println("Profile update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, msgProfileNotFound)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgProfileUpdated})
}
