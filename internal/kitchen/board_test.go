package kitchen

import (
	"errors"
	"testing"
	"time"

	"github.com/franciscosanchezn/gin-cardapio-api/internal/models"
	"github.com/franciscosanchezn/gin-cardapio-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupBoardTest(t *testing.T) (*gorm.DB, services.OrderService) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.OrderItem{}))
	return db, services.NewOrderService(db, services.NewOrderItemService(db))
}

func createBoardOrder(t *testing.T, db *gorm.DB, status models.Status) models.Order {
	t.Helper()
	order := models.Order{UserID: 1, Status: status}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func testThresholds() models.UrgencyThresholds {
	return models.UrgencyThresholds{Pending: 60 * time.Second, Preparing: 20 * time.Minute}
}

func TestBoardProjection(t *testing.T) {
	db, orders := setupBoardTest(t)

	pending := createBoardOrder(t, db, models.StatusPending)
	preparing := createBoardOrder(t, db, models.StatusPreparing)
	ready := createBoardOrder(t, db, models.StatusReady)

	board := NewBoard(orders, testThresholds(), time.Second)
	// ninety seconds after creation: pending past its threshold,
	// preparing still within its own
	board.now = func() time.Time { return time.Now().Add(90 * time.Second) }

	require.NoError(t, board.Refresh())
	snapshot := board.Snapshot()
	require.Len(t, snapshot.Orders, 3)

	byID := map[uint]BoardOrder{}
	for _, o := range snapshot.Orders {
		byID[o.ID] = o
	}

	p := byID[pending.ID]
	assert.True(t, p.Urgent)
	assert.Equal(t, "Aguardando", p.StatusLabel)
	require.NotNil(t, p.ElapsedSeconds)
	assert.GreaterOrEqual(t, *p.ElapsedSeconds, int64(90))

	q := byID[preparing.ID]
	assert.False(t, q.Urgent)
	assert.Equal(t, "Em preparo", q.StatusLabel)
	require.NotNil(t, q.ElapsedSeconds)

	r := byID[ready.ID]
	assert.False(t, r.Urgent)
	assert.Equal(t, "Pronto", r.StatusLabel)
	assert.Nil(t, r.ElapsedSeconds)
}

func TestBoardPreparingBecomesUrgent(t *testing.T) {
	db, orders := setupBoardTest(t)

	preparing := createBoardOrder(t, db, models.StatusPreparing)

	board := NewBoard(orders, testThresholds(), time.Second)
	board.now = func() time.Time { return time.Now().Add(21 * time.Minute) }

	require.NoError(t, board.Refresh())
	snapshot := board.Snapshot()
	require.Len(t, snapshot.Orders, 1)
	assert.Equal(t, preparing.ID, snapshot.Orders[0].ID)
	assert.True(t, snapshot.Orders[0].Urgent)
}

type failingOrders struct {
	services.OrderService
}

func (failingOrders) ListAll() ([]services.OrderDetails, error) {
	return nil, errors.New("store unavailable")
}

func TestBoardKeepsStaleSnapshotOnFailure(t *testing.T) {
	db, orders := setupBoardTest(t)

	createBoardOrder(t, db, models.StatusPending)

	board := NewBoard(orders, testThresholds(), time.Second)
	require.NoError(t, board.Refresh())
	before := board.Snapshot()
	require.Len(t, before.Orders, 1)

	board.orders = failingOrders{}
	require.Error(t, board.Refresh())

	after := board.Snapshot()
	assert.Equal(t, before.RefreshedAt, after.RefreshedAt)
	assert.Len(t, after.Orders, 1)
}
