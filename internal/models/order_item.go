package models

// OrderItem associates a product and quantity with an order. Price is the
// unit price snapshotted from the product at insertion time; it is never
// updated afterwards, so order history survives later price changes.
type OrderItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	OrderID   uint    `json:"order_id" gorm:"not null;index"`
	ProductID uint    `json:"product_id" gorm:"not null;index"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	Price     float64 `json:"price" gorm:"not null"`
}

// OrderItemDetail is an OrderItem joined with the product name for display.
type OrderItemDetail struct {
	ID          uint    `json:"id"`
	OrderID     uint    `json:"order_id"`
	ProductID   uint    `json:"product_id"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	ProductName string  `json:"product_name"`
}

// Subtotal returns the line contribution to the order total.
func (i *OrderItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}
