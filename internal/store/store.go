package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/venegas/pedidos/internal/types"
)

// Store is the durable order queue, backed by an embedded SQLite database.
// Reads are safe concurrently; writes are serialized through a single-writer
// mutex so status updates never interleave.
type Store struct {
	db *sql.DB

	writeMu sync.Mutex
}

func NewStore(path string) (*Store, error) {

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to prepare database dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// InsertOrder persists a new order as PENDING and returns its assigned id.
// The caller is expected to have validated the order already.
func (s *Store) InsertOrder(ctx context.Context, order types.Order) (int64, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	query := `
		INSERT INTO orders
			(client_name, client_phone, client_address, order_detail,
			 payment_type, photo_path, latitude, longitude, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
	res, err := s.db.ExecContext(ctx, query,
		order.ClientName, order.ClientPhone, order.ClientAddress, order.OrderDetail,
		order.PaymentType, order.PhotoPath, order.Latitude, order.Longitude,
		types.PendingStatus, order.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert order: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}
	return id, nil
}

// UpdateOrderStatus overwrites the three mutable fields of one order in a
// single statement. An unknown id is a no-op, not an error.
func (s *Store) UpdateOrderStatus(ctx context.Context, id int64, status types.Status, errorMessage *string, serverID *string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	query := `
		UPDATE orders
		SET status = ?, error_message = ?, server_id = ?
		WHERE id = ?
		`
	_, err := s.db.ExecContext(ctx, query, status, errorMessage, serverID, id)
	if err != nil {
		return fmt.Errorf("failed to update order %d: %w", id, err)
	}
	return nil
}

const orderColumns = `id, client_name, client_phone, client_address, order_detail,
	payment_type, photo_path, latitude, longitude, status, error_message, created_at, server_id`

// GetAllOrders returns every order, newest first.
func (s *Store) GetAllOrders(ctx context.Context) ([]types.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY id DESC
		`
	return s.queryOrders(ctx, query)
}

// GetPendingOrders returns orders awaiting sync, oldest first, so the
// submission order is preserved.
func (s *Store) GetPendingOrders(ctx context.Context) ([]types.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE status = ?
		ORDER BY id ASC
		`
	return s.queryOrders(ctx, query, types.PendingStatus)
}

func (s *Store) GetOrderByID(ctx context.Context, id int64) (*types.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = ?
		`
	row := s.db.QueryRowContext(ctx, query, id)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w", &OrderNotFoundError{ID: id})
		}
		return nil, fmt.Errorf("failed to read order %d: %w", id, err)
	}
	return order, nil
}

func (s *Store) CountByStatus(ctx context.Context, status types.Status) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM orders
		WHERE status = ?
		`
	row := s.db.QueryRowContext(ctx, query, status)

	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

func (s *Store) queryOrders(ctx context.Context, query string, args ...any) ([]types.Order, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed collecting rows %w", err)
	}
	defer rows.Close()

	orders := []types.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed unpacking rows %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed collecting rows %w", err)
	}
	return orders, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*types.Order, error) {
	var (
		order        types.Order
		phone        sql.NullString
		address      sql.NullString
		payment      sql.NullString
		photo        sql.NullString
		errorMessage sql.NullString
		createdAt    sql.NullString
		serverID     sql.NullString
	)

	err := row.Scan(&order.ID, &order.ClientName, &phone, &address, &order.OrderDetail,
		&payment, &photo, &order.Latitude, &order.Longitude, &order.Status,
		&errorMessage, &createdAt, &serverID)
	if err != nil {
		return nil, err
	}

	order.ClientPhone = phone.String
	order.ClientAddress = address.String
	order.PaymentType = types.PaymentType(payment.String)
	order.PhotoPath = photo.String
	order.CreatedAt = createdAt.String
	if errorMessage.Valid {
		order.ErrorMessage = &errorMessage.String
	}
	if serverID.Valid {
		order.ServerID = &serverID.String
	}
	return &order, nil
}
