package controllers

import (
	"net/http"
	"testing"

	"github.com/fleurly/fleurly-api/initializers"
	"github.com/fleurly/fleurly-api/middlewares"
	"github.com/fleurly/fleurly-api/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogRouter() *gin.Engine {
	r := gin.New()
	r.GET("/flowers", GetFlowers)
	r.POST("/flowers", middlewares.Authenticate(), middlewares.RequireAdmin(), CreateFlower)
	r.POST("/categories", middlewares.Authenticate(), middlewares.RequireAdmin(), CreateCategory)
	return r
}

func seedCatalog(t *testing.T) models.Category {
	t.Helper()

	roses := models.Category{Name: "Roses"}
	require.NoError(t, initializers.DB.Create(&roses).Error)
	tulips := models.Category{Name: "Tulips"}
	require.NoError(t, initializers.DB.Create(&tulips).Error)

	flowers := []models.Flower{
		{Name: "Red Rose", Color: "red", BloomingSeason: "summer", Price: 4.50, Availability: true, CategoryID: &roses.ID},
		{Name: "Yellow Tulip", Color: "yellow", BloomingSeason: "spring", Price: 2.75, Availability: true, CategoryID: &tulips.ID},
		{Name: "Wild Daisy", Color: "white", BloomingSeason: "spring", Price: 1.20, Availability: false},
	}
	for i := range flowers {
		require.NoError(t, initializers.DB.Create(&flowers[i]).Error)
	}

	return roses
}

func TestGetFlowersReturnsFullCatalog(t *testing.T) {
	setupTestDB(t)
	router := catalogRouter()
	seedCatalog(t)

	w := performRequest(t, router, http.MethodGet, "/flowers", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Len(t, body["flowers"], 3)
	assert.Len(t, body["categories"], 2)
}

func TestCreateFlower(t *testing.T) {
	setupTestDB(t)
	router := catalogRouter()
	category := seedCatalog(t)
	_, adminToken := createAdmin(t)

	t.Run("admin can create a flower", func(t *testing.T) {
		w := performRequest(t, router, http.MethodPost, "/flowers", map[string]any{
			"name":           "Pink Peony",
			"color":          "pink",
			"bloomingSeason": "spring",
			"price":          6.80,
			"availability":   true,
			"categoryId":     category.ID,
		}, bearer(adminToken))
		require.Equal(t, http.StatusCreated, w.Code)

		var count int64
		initializers.DB.Model(&models.Flower{}).Count(&count)
		assert.EqualValues(t, 4, count)
	})

	t.Run("unknown category is a 404", func(t *testing.T) {
		w := performRequest(t, router, http.MethodPost, "/flowers", map[string]any{
			"name":           "Ghost Orchid",
			"color":          "white",
			"bloomingSeason": "summer",
			"price":          99.99,
			"categoryId":     9999,
		}, bearer(adminToken))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-admin token is forbidden", func(t *testing.T) {
		client := models.Client{Email: "shopper@example.com", Role: models.RoleUser}
		require.NoError(t, initializers.DB.Create(&client).Error)
		token, err := generateAccessToken(client)
		require.NoError(t, err)

		w := performRequest(t, router, http.MethodPost, "/flowers", map[string]any{
			"name":           "Blue Iris",
			"color":          "blue",
			"bloomingSeason": "spring",
			"price":          3.40,
		}, bearer(token))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestCreateCategoryRequiresAuth(t *testing.T) {
	setupTestDB(t)
	router := catalogRouter()

	w := performRequest(t, router, http.MethodPost, "/categories", map[string]string{"name": "Lilies"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	_, adminToken := createAdmin(t)
	w = performRequest(t, router, http.MethodPost, "/categories", map[string]string{"name": "Lilies"}, bearer(adminToken))
	assert.Equal(t, http.StatusCreated, w.Code)
}
