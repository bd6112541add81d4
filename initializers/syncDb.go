package initializers

import (
	"log"

	"github.com/fleurly/fleurly-api/models"
)

func SyncDatabase() {
	DB.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Category{},
		&models.Flower{},
		&models.Order{},
		&models.OrderItem{},
		&models.PasswordResetCode{},
	)
	log.Println("Database synced successfully.")
}
