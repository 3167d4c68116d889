package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/franciscosanchezn/gin-cardapio-api/internal/models"
	"github.com/franciscosanchezn/gin-cardapio-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

func setupControllerTest(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.OrderItem{}))

	productService := services.NewProductService(db)
	orderItemService := services.NewOrderItemService(db)
	orderService := services.NewOrderService(db, orderItemService)

	productController := NewProductController(productService)
	orderController := NewOrderController(orderService, orderItemService)

	router := gin.New()
	router.GET("/products", productController.GetAllProducts)
	router.GET("/products/:id", productController.GetProductByID)
	router.POST("/products", productController.CreateProduct)
	router.POST("/orders", orderController.Create)
	router.POST("/orders/:id/items", orderController.AddItem)
	router.DELETE("/orders/:id/items", orderController.ClearItems)
	router.PATCH("/orders/:id/finalize", orderController.Finalize)
	router.DELETE("/orders/:id", orderController.Delete)

	return testEnv{db: db, router: router}
}

func (e testEnv) request(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestCreateProductEndpoint(t *testing.T) {
	env := setupControllerTest(t)

	w := env.request(t, http.MethodPost, "/products", gin.H{
		"name": "Picanha", "price": 64.90, "category": "Carnes",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, models.CategoryCarnes, created.Category)
	assert.NotZero(t, created.ID)
}

func TestCreateProductRejectsUnknownCategory(t *testing.T) {
	env := setupControllerTest(t)

	w := env.request(t, http.MethodPost, "/products", gin.H{
		"name": "Pudim", "price": 12.00, "category": "sobremesa",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["message"], "carnes, frangos, peixe, massas, bebida, porcao")
}

func TestGetProductNotFound(t *testing.T) {
	env := setupControllerTest(t)

	w := env.request(t, http.MethodGet, "/products/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.request(t, http.MethodGet, "/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderEndpointsLifecycle(t *testing.T) {
	env := setupControllerTest(t)

	product := models.Product{Name: "Suco", Price: 8.00, Category: models.CategoryBebida}
	require.NoError(t, env.db.Create(&product).Error)

	// place the order with an initial item batch
	w := env.request(t, http.MethodPost, "/orders", gin.H{
		"user_id": 1,
		"items":   []gin.H{{"product_id": product.ID, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.InDelta(t, 16.00, order.Total, 1e-9)

	// adding an item returns the recomputed total
	w = env.request(t, http.MethodPost, fmt.Sprintf("/orders/%d/items", order.ID), gin.H{
		"product_id": product.ID, "quantity": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var added struct {
		Total float64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &added))
	assert.InDelta(t, 24.00, added.Total, 1e-9)

	// deleting while items remain is rejected
	w = env.request(t, http.MethodDelete, fmt.Sprintf("/orders/%d", order.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// purge the ledger, then the delete goes through
	w = env.request(t, http.MethodDelete, fmt.Sprintf("/orders/%d/items", order.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.request(t, http.MethodDelete, fmt.Sprintf("/orders/%d", order.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFinalizeEndpoint(t *testing.T) {
	env := setupControllerTest(t)

	w := env.request(t, http.MethodPost, "/orders", gin.H{"user_id": 2})
	require.Equal(t, http.StatusCreated, w.Code)
	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))

	w = env.request(t, http.MethodPatch, fmt.Sprintf("/orders/%d/finalize", order.ID), gin.H{
		"status": "preparing", "table_number": 4,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// skipping ahead in the workflow is a 400
	w = env.request(t, http.MethodPatch, fmt.Sprintf("/orders/%d/finalize", order.ID), gin.H{
		"status": "delivered",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown orders are a 404
	w = env.request(t, http.MethodPatch, "/orders/999/finalize", gin.H{"status": "preparing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
