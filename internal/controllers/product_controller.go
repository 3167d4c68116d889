package controllers

import (
	"errors"
	"net/http"

	"github.com/franciscosanchezn/gin-cardapio-api/internal/models"
	"github.com/franciscosanchezn/gin-cardapio-api/internal/services"
	"github.com/gin-gonic/gin"
)

// ProductController handles HTTP requests for the menu catalog
type ProductController interface {
	// GetAllProducts retrieves all products
	GetAllProducts(c *gin.Context)
	// GetProductByID retrieves a product by its ID
	GetProductByID(c *gin.Context)
	// CreateProduct creates a new product
	CreateProduct(c *gin.Context)
	// UpdateProduct updates an existing product
	UpdateProduct(c *gin.Context)
	// DeleteProduct deletes a product by its ID
	DeleteProduct(c *gin.Context)
}

type productController struct {
	service services.ProductService
}

// NewProductController creates a new instance of ProductController
func NewProductController(service services.ProductService) *productController {
	return &productController{service: service}
}

// GetAllProducts godoc
// @Summary List the menu
// @Description Get every product on the menu
// @Tags products
// @Accept json
// @Produce json
// @Success 200 {array} models.Product
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/public/products [get]
func (pc *productController) GetAllProducts(ctx *gin.Context) {
	products, err := pc.service.GetAllProducts()
	if err != nil {
		respondError(ctx, "Failed to retrieve products", err)
		return
	}
	ctx.JSON(http.StatusOK, products)
}

// GetProductByID godoc
// @Summary Get product by ID
// @Description Get a single menu product by its ID
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Product
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/public/products/{id} [get]
func (pc *productController) GetProductByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	product, err := pc.service.GetProductByID(id)
	if err != nil {
		respondError(ctx, "Failed to retrieve product", err)
		return
	}
	ctx.JSON(http.StatusOK, product)
}

// CreateProduct godoc
// @Summary Create a menu product
// @Description Add a new product to the menu. Category must be one of the known menu sections.
// @Tags products
// @Accept json
// @Produce json
// @Param product body models.Product true "Product object"
// @Success 201 {object} models.Product
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/protected/admin/products [post]
func (pc *productController) CreateProduct(ctx *gin.Context) {
	var product models.Product
	if err := ctx.ShouldBindJSON(&product); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "detail": err.Error()})
		return
	}

	created, err := pc.service.CreateProduct(product)
	if err != nil {
		if isValidationError(err) {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		respondError(ctx, "Failed to create product", err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// UpdateProduct godoc
// @Summary Update a menu product
// @Description Replace an existing product's name, description, price, image and category
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body models.Product true "Product object"
// @Success 200 {object} models.Product
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/protected/admin/products/{id} [put]
func (pc *productController) UpdateProduct(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var product models.Product
	if err := ctx.ShouldBindJSON(&product); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "detail": err.Error()})
		return
	}
	// Ensure the ID from URL is used
	product.ID = id

	updated, err := pc.service.UpdateProduct(product)
	if err != nil {
		if isValidationError(err) {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		respondError(ctx, "Failed to update product", err)
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// DeleteProduct godoc
// @Summary Delete a menu product
// @Description Remove a product. Order items referencing it are purged first to keep referential integrity.
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/protected/admin/products/{id} [delete]
func (pc *productController) DeleteProduct(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := pc.service.DeleteProduct(id); err != nil {
		respondError(ctx, "Failed to delete product", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Product removed"})
}

// isValidationError distinguishes the catalog's pre-persistence
// validation failures (bad category, non-positive price, missing name)
// from infrastructure errors.
func isValidationError(err error) bool {
	return errors.Is(err, models.ErrValidation)
}
