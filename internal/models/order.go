package models

import (
	"time"
)

// Status is the canonical order lifecycle state as persisted. Display
// labels (e.g. "Aguardando") are a presentation concern, see DisplayLabel.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// legacy rows written before the enum was unified used "finalizado"
// interchangeably with ready.
const legacyStatusFinalizado = "finalizado"

// NormalizeStatus maps legacy persisted values onto the canonical enum.
func NormalizeStatus(s Status) Status {
	if string(s) == legacyStatusFinalizado {
		return StatusReady
	}
	return s
}

// IsValid reports whether s is one of the canonical statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo implements the status workflow:
// pending → preparing → ready → delivered, with cancelled reachable from
// any state before delivery. Terminal states allow nothing.
func (s Status) CanTransitionTo(next Status) bool {
	if s.IsTerminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	switch s {
	case StatusPending:
		return next == StatusPreparing
	case StatusPreparing:
		return next == StatusReady
	case StatusReady:
		return next == StatusDelivered
	}
	return false
}

// DisplayLabel returns the kitchen-panel label for a status.
func (s Status) DisplayLabel() string {
	switch NormalizeStatus(s) {
	case StatusPending:
		return "Aguardando"
	case StatusPreparing:
		return "Em preparo"
	case StatusReady:
		return "Pronto"
	case StatusDelivered:
		return "Entregue"
	case StatusCancelled:
		return "Cancelado"
	}
	return string(s)
}

// Order represents a customer's placed or in-progress request for products.
// Total is a cached derived value: it equals the sum of the order's items'
// price*quantity as of the last recomputation, not an authoritative figure.
type Order struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	Status      Status    `json:"status" gorm:"not null;default:'pending'"`
	TableNumber *int      `json:"table_number,omitempty"`
	Notes       string    `json:"notes"`
	Total       float64   `json:"total"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UrgencyThresholds carries the elapsed-time limits after which a pending
// or preparing order is flagged urgent on the kitchen board.
type UrgencyThresholds struct {
	Pending   time.Duration
	Preparing time.Duration
}

// IsUrgent computes the kitchen urgency flag for the order at the given
// instant. It is a pure projection of status and elapsed wall-clock time,
// never persisted: ready, delivered and cancelled orders are never urgent.
func (o *Order) IsUrgent(now time.Time, t UrgencyThresholds) bool {
	elapsed := now.Sub(o.CreatedAt)
	switch NormalizeStatus(o.Status) {
	case StatusPending:
		return elapsed >= t.Pending
	case StatusPreparing:
		return elapsed >= t.Preparing
	}
	return false
}
