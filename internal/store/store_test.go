package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venegas/pedidos/internal/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(filepath.Join(t.TempDir(), "pedidos.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testOrder() types.Order {
	return types.Order{
		ClientName:    "Ana Lopez",
		ClientPhone:   "0999999999",
		ClientAddress: "Av. Central y Loja",
		OrderDetail:   "2 cajas de agua",
		PaymentType:   types.PaymentCash,
		PhotoPath:     "/tmp/photo.jpg",
		Latitude:      -2.1894,
		Longitude:     -79.8891,
		CreatedAt:     "2026-08-29 10:15:00",
	}
}

func TestInsertAndGetByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	order := testOrder()
	id, err := s.InsertOrder(ctx, order)
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := s.GetOrderByID(ctx, id)
	require.NoError(t, err)

	expected := order
	expected.ID = id
	expected.Status = types.PendingStatus
	assert.Equal(t, expected, *got)
}

func TestInsertForcesPendingStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	order := testOrder()
	order.Status = types.SyncedStatus

	id, err := s.InsertOrder(ctx, order)
	require.NoError(t, err)

	got, err := s.GetOrderByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, types.PendingStatus, got.Status)
	assert.Nil(t, got.ErrorMessage)
	assert.Nil(t, got.ServerID)
}

func TestGetOrderByIDNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetOrderByID(context.Background(), 42)

	var notFound *OrderNotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, int64(42), notFound.ID)
}

func TestUpdateOrderStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.InsertOrder(ctx, testOrder())
	require.NoError(t, err)

	t.Run("to synced", func(t *testing.T) {
		serverID := "srv-001"
		err := s.UpdateOrderStatus(ctx, id, types.SyncedStatus, nil, &serverID)
		require.NoError(t, err)

		got, err := s.GetOrderByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, types.SyncedStatus, got.Status)
		assert.Nil(t, got.ErrorMessage)
		require.NotNil(t, got.ServerID)
		assert.Equal(t, "srv-001", *got.ServerID)
	})

	t.Run("to error", func(t *testing.T) {
		msg := "HTTP 500"
		err := s.UpdateOrderStatus(ctx, id, types.ErrorStatus, &msg, nil)
		require.NoError(t, err)

		got, err := s.GetOrderByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, types.ErrorStatus, got.Status)
		require.NotNil(t, got.ErrorMessage)
		assert.Equal(t, "HTTP 500", *got.ErrorMessage)
		assert.Nil(t, got.ServerID)
	})
}

func TestUpdateOrderStatusUnknownIDIsNoop(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	msg := "HTTP 500"
	err := s.UpdateOrderStatus(ctx, 9999, types.ErrorStatus, &msg, nil)
	assert.NoError(t, err)
}

func TestOrdering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 3; i++ {
		id, err := s.InsertOrder(ctx, testOrder())
		require.NoError(t, err)
		ids = append(ids, id)
	}

	t.Run("all newest first", func(t *testing.T) {
		orders, err := s.GetAllOrders(ctx)
		require.NoError(t, err)
		require.Len(t, orders, 3)
		assert.Equal(t, []int64{ids[2], ids[1], ids[0]},
			[]int64{orders[0].ID, orders[1].ID, orders[2].ID})
	})

	t.Run("pending oldest first", func(t *testing.T) {
		orders, err := s.GetPendingOrders(ctx)
		require.NoError(t, err)
		require.Len(t, orders, 3)
		assert.Equal(t, []int64{ids[0], ids[1], ids[2]},
			[]int64{orders[0].ID, orders[1].ID, orders[2].ID})
	})
}

func TestPendingExcludesTerminalStatuses(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.InsertOrder(ctx, testOrder())
	require.NoError(t, err)
	second, err := s.InsertOrder(ctx, testOrder())
	require.NoError(t, err)
	third, err := s.InsertOrder(ctx, testOrder())
	require.NoError(t, err)

	serverID := "srv-001"
	require.NoError(t, s.UpdateOrderStatus(ctx, first, types.SyncedStatus, nil, &serverID))
	msg := "Sin conexión: timeout"
	require.NoError(t, s.UpdateOrderStatus(ctx, second, types.ErrorStatus, &msg, nil))

	pending, err := s.GetPendingOrders(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, third, pending[0].ID)
}

func TestCountByStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.InsertOrder(ctx, testOrder())
		require.NoError(t, err)
	}
	serverID := "srv-001"
	require.NoError(t, s.UpdateOrderStatus(ctx, 1, types.SyncedStatus, nil, &serverID))

	pending, err := s.CountByStatus(ctx, types.PendingStatus)
	require.NoError(t, err)
	assert.Equal(t, 2, pending)

	synced, err := s.CountByStatus(ctx, types.SyncedStatus)
	require.NoError(t, err)
	assert.Equal(t, 1, synced)

	errored, err := s.CountByStatus(ctx, types.ErrorStatus)
	require.NoError(t, err)
	assert.Equal(t, 0, errored)
}

// status=ERROR implies an error message, status=SYNCED implies a server id,
// after any sequence of updates.
func TestStatusInvariantHolds(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := s.InsertOrder(ctx, testOrder())
		require.NoError(t, err)
	}
	serverID := "srv-7"
	msg := "HTTP 401"
	require.NoError(t, s.UpdateOrderStatus(ctx, 1, types.SyncedStatus, nil, &serverID))
	require.NoError(t, s.UpdateOrderStatus(ctx, 2, types.ErrorStatus, &msg, nil))

	orders, err := s.GetAllOrders(ctx)
	require.NoError(t, err)

	for _, order := range orders {
		switch order.Status {
		case types.ErrorStatus:
			assert.NotNil(t, order.ErrorMessage)
			assert.Nil(t, order.ServerID)
		case types.SyncedStatus:
			assert.NotNil(t, order.ServerID)
			assert.Nil(t, order.ErrorMessage)
		default:
			assert.Nil(t, order.ErrorMessage)
			assert.Nil(t, order.ServerID)
		}
	}
}
