package services

import (
	"testing"

	"github.com/franciscosanchezn/gin-cardapio-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.OrderItem{})
	require.NoError(t, err)

	return db
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price float64) models.Product {
	product := models.Product{
		Name:     name,
		Price:    price,
		Category: models.CategoryCarnes,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func createTestUser(t *testing.T, db *gorm.DB, id uint, name string) models.User {
	user := models.User{
		ID:       id,
		Name:     name,
		Email:    name + "@example.com",
		Password: "irrelevant",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}
