package models

import "gorm.io/gorm"

type Order struct {
	gorm.Model
	CustomerName string      `json:"customerName"`
	Email        string      `json:"email"`
	Phone        string      `json:"phone"`
	Address      string      `json:"address"`
	TotalPrice   float64     `json:"totalPrice"`
	OrderItems   []OrderItem `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderItem struct {
	gorm.Model
	OrderID  uint    `json:"orderId"`
	FlowerID uint    `json:"flowerId"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type OrderItemData struct {
	FlowerID uint    `json:"flowerId" binding:"required"`
	Quantity int     `json:"quantity" binding:"required,min=1"`
	Price    float64 `json:"price" binding:"required"`
}

type OrderData struct {
	CustomerName string          `json:"customerName"`
	Email        string          `json:"email" binding:"required,email"`
	Phone        string          `json:"phone" binding:"required"`
	Address      string          `json:"address" binding:"required"`
	Total        float64         `json:"total" binding:"required"`
	OrderItems   []OrderItemData `json:"orderItems" binding:"required,min=1,dive"`
}
