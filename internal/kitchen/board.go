// Package kitchen serves the cook-facing board: a periodically refreshed
// snapshot of every order, annotated with the urgency projection. The
// annotation is recomputed fresh on every pull and is never written back
// to the store.
package kitchen

import (
	"context"
	"sync"
	"time"

	"github.com/franciscosanchezn/gin-cardapio-api/internal/models"
	"github.com/franciscosanchezn/gin-cardapio-api/internal/services"
	log "github.com/sirupsen/logrus"
)

// BoardOrder is one order as shown on the kitchen panel. ElapsedSeconds is
// only populated while the order is still in flight; ready, delivered and
// cancelled orders stop exposing an elapsed-time display.
type BoardOrder struct {
	services.OrderDetails
	StatusLabel    string `json:"status_label"`
	Urgent         bool   `json:"urgent"`
	ElapsedSeconds *int64 `json:"elapsed_seconds,omitempty"`
}

// Snapshot is one full refresh of the board.
type Snapshot struct {
	Orders      []BoardOrder `json:"orders"`
	RefreshedAt time.Time    `json:"refreshed_at"`
}

// Board pulls the order list on a fixed interval and keeps the latest
// snapshot for handlers to serve. Reads never hit the store directly.
type Board struct {
	orders     services.OrderService
	thresholds models.UrgencyThresholds
	interval   time.Duration

	mu       sync.RWMutex
	snapshot Snapshot

	now func() time.Time
}

// NewBoard creates a kitchen board over the order service.
func NewBoard(orders services.OrderService, thresholds models.UrgencyThresholds, interval time.Duration) *Board {
	return &Board{
		orders:     orders,
		thresholds: thresholds,
		interval:   interval,
		now:        time.Now,
	}
}

// Run refreshes the snapshot on the configured interval until the context
// is cancelled. A failed refresh keeps the previous snapshot.
func (b *Board) Run(ctx context.Context) {
	if err := b.Refresh(); err != nil {
		log.WithError(err).Warn("Initial kitchen board refresh failed")
	}

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("Kitchen board refresh loop stopped")
			return
		case <-ticker.C:
			if err := b.Refresh(); err != nil {
				log.WithError(err).Warn("Kitchen board refresh failed, serving stale snapshot")
			}
		}
	}
}

// Refresh pulls a full order snapshot and recomputes the projection.
func (b *Board) Refresh() error {
	enriched, err := b.orders.ListAll()
	if err != nil {
		return err
	}

	now := b.now()
	boardOrders := make([]BoardOrder, 0, len(enriched))
	for _, order := range enriched {
		boardOrders = append(boardOrders, b.project(order, now))
	}

	b.mu.Lock()
	b.snapshot = Snapshot{Orders: boardOrders, RefreshedAt: now}
	b.mu.Unlock()
	return nil
}

// Snapshot returns the latest board state.
func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshot
}

func (b *Board) project(order services.OrderDetails, now time.Time) BoardOrder {
	projected := BoardOrder{
		OrderDetails: order,
		StatusLabel:  order.Status.DisplayLabel(),
		Urgent:       order.IsUrgent(now, b.thresholds),
	}
	switch models.NormalizeStatus(order.Status) {
	case models.StatusPending, models.StatusPreparing:
		elapsed := int64(now.Sub(order.CreatedAt) / time.Second)
		if elapsed < 0 {
			elapsed = 0
		}
		projected.ElapsedSeconds = &elapsed
	}
	return projected
}
