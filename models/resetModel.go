package models

import (
	"time"

	"gorm.io/gorm"
)

// PasswordResetCode is a single-use reset credential. A code is only valid
// while ExpiresAt is in the future and Consumed is false.
type PasswordResetCode struct {
	gorm.Model
	Email     string    `json:"email" gorm:"index"`
	Code      string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	Consumed  bool      `json:"consumed"`
}

type ForgotPasswordData struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordData struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}
