package services

import (
	"errors"

	"github.com/franciscosanchezn/gin-cardapio-api/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// OrderItemService is the line-item ledger: it owns the price-snapshot
// insert and the bulk deletes used to keep referential integrity when a
// parent product or order goes away.
type OrderItemService interface {
	// Insert adds a product to an order, snapshotting the product's
	// current price onto the item. The price lookup and the insert run in
	// a single transaction so a concurrent price update cannot produce an
	// inconsistent snapshot.
	Insert(orderID, productID uint, quantity int) (models.OrderItem, error)
	// ListByOrder returns the order's items joined with product names,
	// in insertion order.
	ListByOrder(orderID uint) ([]models.OrderItemDetail, error)
	// DeleteByProduct bulk-removes every item referencing a product.
	DeleteByProduct(productID uint) error
	// DeleteByOrder bulk-removes every item belonging to an order.
	DeleteByOrder(orderID uint) error
}

type orderItemService struct {
	db *gorm.DB
}

// NewOrderItemService creates a new instance of OrderItemService
func NewOrderItemService(db *gorm.DB) OrderItemService {
	return &orderItemService{db: db}
}

func (s *orderItemService) Insert(orderID, productID uint, quantity int) (models.OrderItem, error) {
	if quantity <= 0 {
		return models.OrderItem{}, ErrInvalidQuantity
	}

	var item models.OrderItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		item = models.OrderItem{
			OrderID:   orderID,
			ProductID: productID,
			Quantity:  quantity,
			Price:     product.Price,
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		return models.OrderItem{}, err
	}

	log.WithFields(log.Fields{
		"order_id":   orderID,
		"product_id": productID,
		"quantity":   quantity,
		"price":      item.Price,
	}).Debug("Order item inserted")
	return item, nil
}

func (s *orderItemService) ListByOrder(orderID uint) ([]models.OrderItemDetail, error) {
	var items []models.OrderItemDetail
	err := s.db.Model(&models.OrderItem{}).
		Select("order_items.id, order_items.order_id, order_items.product_id, order_items.quantity, order_items.price, products.name AS product_name").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.id").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *orderItemService) DeleteByProduct(productID uint) error {
	return s.db.Where("product_id = ?", productID).Delete(&models.OrderItem{}).Error
}

func (s *orderItemService) DeleteByOrder(orderID uint) error {
	return s.db.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error
}
