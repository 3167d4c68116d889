package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/franciscosanchezn/gin-cardapio-api/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UnknownCustomerName is the placeholder shown on the kitchen panel when
// an order's user no longer resolves in the user directory.
const UnknownCustomerName = "Cliente Desconhecido"

// OrderItemRequest is one {productId, quantity} pair of a batch create.
type OrderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// OrderUpdate carries the sparse fields of a status update. Nil pointers
// mean "leave unchanged"; omission is not a null-out.
type OrderUpdate struct {
	Status      *models.Status
	TableNumber *int
	Notes       *string
}

// OrderDetails is an order enriched for kitchen-facing views: resolved
// items, the placing customer's display name and the creation instant as
// a unix-millisecond timestamp.
type OrderDetails struct {
	models.Order
	OrderedAt    int64                    `json:"ordered_at"`
	Items        []models.OrderItemDetail `json:"items"`
	CustomerName string                   `json:"customer_name"`
}

// OrderService owns the order lifecycle: creation with an optional batch
// of items, caller-driven total recomputation, status workflow updates
// and FK-safe deletion.
type OrderService interface {
	// Create makes a pending order with total 0, inserts the optional
	// item batch one at a time, then recomputes and applies the total
	// once after all insertions.
	Create(userID uint, notes string, items []OrderItemRequest) (models.Order, error)
	// AddItem appends one item to an existing order and refreshes the
	// cached total. Returns the created item and the recomputed total.
	AddItem(orderID, productID uint, quantity int) (models.OrderItem, float64, error)
	// ComputeTotal sums price*quantity across the order's items.
	// An order with no items totals 0, not an error.
	ComputeTotal(orderID uint) (float64, error)
	// ApplyTotal persists a computed total onto the order. Callers must
	// invoke it after every item mutation; the aggregate does not
	// auto-recompute on read.
	ApplyTotal(orderID uint, total float64) error
	// SetStatus performs a sparse update of status, table number and
	// notes. Only supplied fields are written. Status changes are
	// validated against the workflow.
	SetStatus(orderID uint, update OrderUpdate) error
	// Cancel marks the order cancelled, preserving history. A persistence
	// rejection of the value surfaces as ErrStatusNotSupported so the
	// operator learns a migration is required.
	Cancel(orderID uint) error
	// Delete removes the order. It fails while line items remain: the
	// ledger must purge them first.
	Delete(orderID uint) error
	// GetByID fetches a single order.
	GetByID(orderID uint) (models.Order, error)
	// ListByUser returns a customer's orders, most recent first.
	ListByUser(userID uint) ([]models.Order, error)
	// ListAll returns every order enriched with items and customer name,
	// most recent first, for the kitchen panel.
	ListAll() ([]OrderDetails, error)
}

type orderService struct {
	db    *gorm.DB
	items OrderItemService
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(db *gorm.DB, items OrderItemService) OrderService {
	return &orderService{db: db, items: items}
}

func (s *orderService) Create(userID uint, notes string, items []OrderItemRequest) (models.Order, error) {
	if userID == 0 {
		return models.Order{}, fmt.Errorf("user id is required")
	}

	order := models.Order{
		UserID: userID,
		Status: models.StatusPending,
		Notes:  notes,
		Total:  0,
	}
	if err := s.db.Create(&order).Error; err != nil {
		return models.Order{}, err
	}
	log.WithFields(log.Fields{"order_id": order.ID, "user_id": userID}).Info("Order created")

	if len(items) == 0 {
		return order, nil
	}

	// Items go in strictly one at a time; the single trailing
	// recomputation avoids redundant aggregation per item. A failure here
	// aborts the remaining steps but already-inserted items stay put.
	for _, item := range items {
		if _, err := s.items.Insert(order.ID, item.ProductID, item.Quantity); err != nil {
			return models.Order{}, fmt.Errorf("adding item for product %d: %w", item.ProductID, err)
		}
	}

	total, err := s.ComputeTotal(order.ID)
	if err != nil {
		return models.Order{}, err
	}
	if err := s.ApplyTotal(order.ID, total); err != nil {
		return models.Order{}, err
	}
	order.Total = total
	return order, nil
}

func (s *orderService) AddItem(orderID, productID uint, quantity int) (models.OrderItem, float64, error) {
	if _, err := s.GetByID(orderID); err != nil {
		return models.OrderItem{}, 0, err
	}

	item, err := s.items.Insert(orderID, productID, quantity)
	if err != nil {
		return models.OrderItem{}, 0, err
	}

	total, err := s.ComputeTotal(orderID)
	if err != nil {
		return models.OrderItem{}, 0, err
	}
	if err := s.ApplyTotal(orderID, total); err != nil {
		return models.OrderItem{}, 0, err
	}
	return item, total, nil
}

func (s *orderService) ComputeTotal(orderID uint) (float64, error) {
	var total float64
	err := s.db.Model(&models.OrderItem{}).
		Where("order_id = ?", orderID).
		Select("COALESCE(SUM(price * quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (s *orderService) ApplyTotal(orderID uint, total float64) error {
	return s.db.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("total", total).Error
}

func (s *orderService) SetStatus(orderID uint, update OrderUpdate) error {
	order, err := s.GetByID(orderID)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{}
	if update.Status != nil {
		next := models.NormalizeStatus(*update.Status)
		if !next.IsValid() {
			return fmt.Errorf("%w: %q, valid statuses: pending, preparing, ready, delivered, cancelled", ErrInvalidStatus, *update.Status)
		}
		current := models.NormalizeStatus(order.Status)
		if next != current && !current.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, next)
		}
		fields["status"] = next
	}
	if update.TableNumber != nil {
		fields["table_number"] = *update.TableNumber
	}
	if update.Notes != nil {
		fields["notes"] = *update.Notes
	}
	if len(fields) == 0 {
		return ErrNothingToUpdate
	}

	if err := s.db.Model(&models.Order{}).Where("id = ?", orderID).Updates(fields).Error; err != nil {
		return err
	}
	log.WithFields(log.Fields{"order_id": orderID, "fields": fields}).Info("Order updated")
	return nil
}

func (s *orderService) Cancel(orderID uint) error {
	order, err := s.GetByID(orderID)
	if err != nil {
		return err
	}
	current := models.NormalizeStatus(order.Status)
	if !current.CanTransitionTo(models.StatusCancelled) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, models.StatusCancelled)
	}

	err = s.db.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", models.StatusCancelled).Error
	if err != nil {
		// Older schemas enumerate the status column without 'cancelled'.
		// Surface that distinctly so the operator knows to run the
		// migration instead of chasing a generic failure.
		if isConstraintViolation(err) {
			return fmt.Errorf("%w: %v", ErrStatusNotSupported, err)
		}
		return err
	}
	log.WithField("order_id", orderID).Info("Order cancelled")
	return nil
}

// isConstraintViolation pattern-detects a CHECK/enum rejection from the
// underlying driver's error text.
func isConstraintViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "check") || strings.Contains(msg, "constraint")
}

func (s *orderService) Delete(orderID uint) error {
	if _, err := s.GetByID(orderID); err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&models.OrderItem{}).Where("order_id = ?", orderID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrOrderHasItems
	}

	if err := s.db.Delete(&models.Order{}, orderID).Error; err != nil {
		return err
	}
	log.WithField("order_id", orderID).Info("Order deleted")
	return nil
}

func (s *orderService) GetByID(orderID uint) (models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrOrderNotFound
		}
		return models.Order{}, err
	}
	order.Status = models.NormalizeStatus(order.Status)
	return order, nil
}

func (s *orderService) ListByUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Status = models.NormalizeStatus(orders[i].Status)
	}
	return orders, nil
}

func (s *orderService) ListAll() ([]OrderDetails, error) {
	var orders []models.Order
	if err := s.db.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}

	enriched := make([]OrderDetails, 0, len(orders))
	for _, order := range orders {
		order.Status = models.NormalizeStatus(order.Status)

		items, err := s.items.ListByOrder(order.ID)
		if err != nil {
			return nil, err
		}

		// The user directory is a collaborator: a missing user must not
		// fail the whole listing.
		customerName := UnknownCustomerName
		var user models.User
		if err := s.db.First(&user, order.UserID).Error; err == nil {
			customerName = user.Name
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		enriched = append(enriched, OrderDetails{
			Order:        order,
			OrderedAt:    order.CreatedAt.UnixMilli(),
			Items:        items,
			CustomerName: customerName,
		})
	}
	return enriched, nil
}
