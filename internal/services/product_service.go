package services

import (
	"errors"

	"github.com/franciscosanchezn/gin-cardapio-api/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ProductService provides methods to manage the menu catalog
type ProductService interface {
	// GetAllProducts retrieves every product on the menu
	GetAllProducts() ([]models.Product, error)
	// GetProductByID retrieves a product by its ID
	GetProductByID(id uint) (models.Product, error)
	// CreateProduct validates and persists a new product
	CreateProduct(product models.Product) (models.Product, error)
	// UpdateProduct validates and fully replaces an existing product
	UpdateProduct(product models.Product) (models.Product, error)
	// DeleteProduct removes a product, purging dependent order items first
	DeleteProduct(id uint) error
}

type productService struct {
	db *gorm.DB
}

// NewProductService creates a new instance of ProductService
func NewProductService(db *gorm.DB) ProductService {
	return &productService{db: db}
}

func (s *productService) GetAllProducts() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *productService) GetProductByID(id uint) (models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, err
	}
	return product, nil
}

func (s *productService) CreateProduct(product models.Product) (models.Product, error) {
	if err := product.Validate(); err != nil {
		return models.Product{}, err
	}
	if err := s.db.Create(&product).Error; err != nil {
		return models.Product{}, err
	}
	log.WithFields(log.Fields{"product_id": product.ID, "category": product.Category}).
		Info("Product created")
	return product, nil
}

func (s *productService) UpdateProduct(product models.Product) (models.Product, error) {
	if err := product.Validate(); err != nil {
		return models.Product{}, err
	}
	var existing models.Product
	if err := s.db.First(&existing, product.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, err
	}
	if err := s.db.Save(&product).Error; err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// DeleteProduct removes the product after bulk-removing every order item
// that references it, so no line items are orphaned. Both deletes run in
// one transaction.
func (s *productService) DeleteProduct(id uint) error {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Product{}, id).Error; err != nil {
			return err
		}
		log.WithField("product_id", id).Info("Product and dependent order items removed")
		return nil
	})
}
