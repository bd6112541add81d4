package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model
	Name string `json:"name" binding:"required"`
}

type Flower struct {
	gorm.Model
	Name             string  `json:"name" binding:"required"`
	ScientificName   string  `json:"scientificName"`
	Color            string  `json:"color" binding:"required"`
	BloomingSeason   string  `json:"bloomingSeason" binding:"required"`
	PetalCount       int     `json:"petalCount"`
	Height           float64 `json:"height"`
	Image            string  `json:"image"`
	CareInstructions string  `json:"careInstructions"`
	Price            float64 `json:"price" binding:"required"`
	Availability     bool    `json:"availability"`
	CategoryID       *uint   `json:"categoryId"`
}
