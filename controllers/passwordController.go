package controllers

import (
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fleurly/fleurly-api/initializers"
	"github.com/fleurly/fleurly-api/models"
	"github.com/fleurly/fleurly-api/utils"
	"github.com/gin-gonic/gin"
)

// resetCodeTTL is how long an emailed code stays valid.
const resetCodeTTL = 15 * time.Minute

const (
	msgResetCodeSent       = "Check your email for a password reset code."
	msgInvalidResetCode    = "invalid or expired code"
	msgPasswordReset       = "Password reset successful"
	msgUnableToSaveCode    = "unable to save reset code."
	msgUnableToSendEmail   = "There was an error sending the password reset email. Try again later."
	msgCodeGenerationError = "There was an error trying to generate a password reset code. Try again later."
)

// sendResetCodeEmail is a variable so tests can stub out SMTP delivery.
var sendResetCodeEmail = func(client models.Client, code string) error {
	emailData := utils.EmailData{
		Name:    client.FirstName,
		Message: "You requested a password reset. Use the code below to reset your password.",
		Code:    code,
	}

	templatePath := filepath.Join("templates", "reset_code.html")
	return utils.SendEmail(client.Email, "Password Reset Request", emailData, templatePath)
}

// ForgotPassword issues a short-lived 4-digit reset code bound to the
// client's email and delivers it by mail.
func ForgotPassword(ctx *gin.Context) {
	var forgotPasswordData models.ForgotPasswordData
	if err := ctx.ShouldBindJSON(&forgotPasswordData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	client, err := findClientByEmail(forgotPasswordData.Email)
	if err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgClientNotFound)
		return
	}

	code, err := utils.GenerateResetCode()
	if err != nil {
		log.Println("Reset code generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgCodeGenerationError)
		return
	}

	resetCode := models.PasswordResetCode{
		Email:     client.Email,
		Code:      code,
		ExpiresAt: time.Now().Add(resetCodeTTL),
	}
	if result := initializers.DB.Create(&resetCode); result.Error != nil {
		log.Println("Error saving reset code:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgUnableToSaveCode)
		return
	}

	if err := sendResetCodeEmail(client, code); err != nil {
		log.Println("Error sending password reset email:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgUnableToSendEmail)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgResetCodeSent})
}

// ResetPassword verifies a previously issued code and rewrites the stored
// password hashes. A code is single-use: it is marked consumed on success.
func ResetPassword(ctx *gin.Context) {
	var resetData models.ResetPasswordData
	if err := ctx.ShouldBindJSON(&resetData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var resetCode models.PasswordResetCode
	result := initializers.DB.
		Where("email = ? AND consumed = ?", resetData.Email, false).
		Order("created_at desc").
		First(&resetCode)
	if result.Error != nil || resetCode.Code != resetData.Code || time.Now().After(resetCode.ExpiresAt) {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidResetCode)
		return
	}

	client, err := findClientByEmail(resetData.Email)
	if err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgClientNotFound)
		return
	}

	hashedPassword, err := hashPassword(resetData.NewPassword)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	tx := initializers.DB.Begin()
	if err := tx.Model(&client).Update("password", hashedPassword).Error; err != nil {
		tx.Rollback()
		log.Println("Error resetting password:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	// The identity row carries its own hash of the same password.
	if client.UserID != nil {
		userPassword, err := hashPassword(resetData.NewPassword)
		if err != nil {
			tx.Rollback()
			log.Println("Password hashing error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
			return
		}
		if err := tx.Model(&models.User{}).Where("id = ?", *client.UserID).
			Update("password", userPassword).Error; err != nil {
			tx.Rollback()
			log.Println("Error resetting password:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
	}

	if err := tx.Model(&resetCode).Update("consumed", true).Error; err != nil {
		tx.Rollback()
		log.Println("Error consuming reset code:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		log.Println("Password reset commit error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgPasswordReset})
}
