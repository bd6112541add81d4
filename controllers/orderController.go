package controllers

import (
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fleurly/fleurly-api/initializers"
	"github.com/fleurly/fleurly-api/models"
	"github.com/fleurly/fleurly-api/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// anonymousCustomer is the sentinel for orders placed without a name.
const anonymousCustomer = "Anonymous"

// sendOrderNotification is a variable so tests can stub out SMTP delivery.
var sendOrderNotification = func(order models.Order) error {
	emailData := utils.EmailData{
		Name: order.CustomerName,
		Message: fmt.Sprintf(
			"Order #%d placed by %s (%s) for a total of %.2f with %d item(s).",
			order.ID, order.CustomerName, order.Email, order.TotalPrice, len(order.OrderItems),
		),
	}

	templatePath := filepath.Join("templates", "order_notification.html")
	return utils.SendEmail(os.Getenv("SHOP_OWNER_EMAIL"), "New Order Placed", emailData, templatePath)
}

func orderNotificationsEnabled() bool {
	return os.Getenv("ORDER_NOTIFICATIONS_ENABLED") == "true"
}

// CreateOrder persists an order and its line items atomically. Every
// referenced flower must exist; otherwise the whole write is rolled back.
// Item price and quantity are stored verbatim as a purchase-time snapshot.
func CreateOrder(ctx *gin.Context) {
	var orderData models.OrderData
	if err := ctx.ShouldBindJSON(&orderData); err != nil {
		log.Printf("JSON binding error: %v", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	customerName := orderData.CustomerName
	if customerName == "" {
		customerName = anonymousCustomer
	}

	tx := initializers.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	order := models.Order{
		CustomerName: customerName,
		Email:        orderData.Email,
		Phone:        orderData.Phone,
		Address:      orderData.Address,
		TotalPrice:   orderData.Total,
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to create order")
		return
	}

	for _, item := range orderData.OrderItems {
		var flower models.Flower
		if err := tx.First(&flower, item.FlowerID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				sendErrorResponse(ctx, http.StatusNotFound,
					fmt.Sprintf("flower with id %d does not exist", item.FlowerID))
			} else {
				log.Println("Flower lookup error:", err)
				sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			}
			return
		}

		orderItem := models.OrderItem{
			OrderID:  order.ID,
			FlowerID: item.FlowerID,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
		if err := tx.Create(&orderItem).Error; err != nil {
			tx.Rollback()
			sendErrorResponse(ctx, http.StatusBadRequest, "Failed to create order items")
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to save order")
		return
	}

	if err := initializers.DB.Preload("OrderItems").First(&order, order.ID).Error; err != nil {
		log.Println("Order reload error:", err)
	}

	if orderNotificationsEnabled() {
		if err := sendOrderNotification(order); err != nil {
			log.Println("Error sending order notification:", err)
		}
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Order created successfully.",
		"order":   order,
	})
}

// GetOrders lists all orders for the shop admin, newest first by default.
func GetOrders(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	if limit < 1 {
		limit = 15
	}

	sortOrder := ctx.DefaultQuery("sort", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	query := initializers.DB.Preload("OrderItems").Order("created_at " + sortOrder)
	countQuery := initializers.DB.Model(&models.Order{})
	if search := ctx.Query("search"); search != "" {
		query = query.Where("id LIKE ?", "%"+search+"%")
		countQuery = countQuery.Where("id LIKE ?", "%"+search+"%")
	}

	var orders []models.Order
	result := query.Limit(limit).Offset((page - 1) * limit).Find(&orders)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", result.Error)
		return
	}

	var count int64
	countQuery.Count(&count)
	totalPages := int(math.Ceil(float64(count) / float64(limit)))

	ctx.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"metadata": gin.H{
			"total":       count,
			"currentPage": page,
			"limit":       limit,
			"totalPages":  totalPages,
			"hasPrevPage": page > 1,
			"hasNextPage": page < totalPages,
		},
	})
}
