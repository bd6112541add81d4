package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/fleurly/fleurly-api/initializers"
	"github.com/fleurly/fleurly-api/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

// GetFlowers returns the full catalog: every flower and every category.
func GetFlowers(ctx *gin.Context) {
	var flowers []models.Flower
	if result := initializers.DB.Find(&flowers); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch flowers", result.Error)
		return
	}

	var categories []models.Category
	if result := initializers.DB.Find(&categories); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch categories", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"flowers":    flowers,
		"categories": categories,
	})
}

// Admin handlers

func CreateCategory(ctx *gin.Context) {
	var category models.Category
	if err := ctx.ShouldBindJSON(&category); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := initializers.DB.Create(&category).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create category", err)
		return
	}

	ctx.JSON(http.StatusCreated, category)
}

func CreateFlower(ctx *gin.Context) {
	var flower models.Flower
	if err := ctx.ShouldBindJSON(&flower); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	// Validate category exists when one is referenced
	if flower.CategoryID != nil {
		var category models.Category
		if err := initializers.DB.First(&category, *flower.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondWithError(ctx, http.StatusNotFound, "Category not found", nil)
			} else {
				respondWithError(ctx, http.StatusInternalServerError, "Failed to validate category", err)
			}
			return
		}
	}

	if err := initializers.DB.Create(&flower).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create flower", err)
		return
	}

	ctx.JSON(http.StatusCreated, flower)
}

// getAWSUploader returns a configured AWS S3 uploader
func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

// UploadFlowerImage stores a flower photo in S3 and records its URL.
func UploadFlowerImage(ctx *gin.Context) {
	file, err := ctx.FormFile("image")
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	flowerIdStr := ctx.PostForm("flowerId")
	if flowerIdStr == "" {
		respondWithError(ctx, http.StatusBadRequest, "Missing flowerId", nil)
		return
	}

	flowerId, err := strconv.Atoi(flowerIdStr)
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid flowerId", err)
		return
	}

	var flower models.Flower
	if err := initializers.DB.First(&flower, flowerId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Flower not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to validate flower", err)
		}
		return
	}

	uploader, err := getAWSUploader()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to configure AWS", err)
		return
	}

	f, err := file.Open()
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Failed to open uploaded file", err)
		return
	}
	defer f.Close()

	key := fmt.Sprintf("flower_images/%d-%s%s", flowerId, uuid.NewString(), filepath.Ext(file.Filename))

	result, err := uploader.Upload(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(os.Getenv("S3_BUCKET")),
		Key:         aws.String(key),
		Body:        f,
		ACL:         "public-read",
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		log.Printf("Error uploading file %s: %v", file.Filename, err)
		respondWithError(ctx, http.StatusInternalServerError, "Failed to upload image", err)
		return
	}

	if err := initializers.DB.Model(&flower).Update("image", result.Location).Error; err != nil {
		log.Printf("Image uploaded but not saved for flower %d: %v", flowerId, err)
		respondWithError(ctx, http.StatusInternalServerError, "Failed to save image URL", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Image uploaded successfully",
		"url":     result.Location,
	})
}
