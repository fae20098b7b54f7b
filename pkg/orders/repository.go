package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/femi9outfit/storefront/pkg/cache"
	sqldb "github.com/femi9outfit/storefront/pkg/database"
	"github.com/google/uuid"
)

// Repository persists orders.
type Repository interface {
	// Create stores order and its items atomically, filling in ID and
	// CreatedAt.
	Create(ctx context.Context, order *Order, items []Item) error
	Find(ctx context.Context, id string) (*Order, error)
	SetStatus(ctx context.Context, id string, status Status) error
	Items(ctx context.Context, orderID string) ([]Item, error)
	// ProductNames resolves product ids to names. Unknown ids are absent
	// from the result.
	ProductNames(ctx context.Context, ids []string) (map[string]string, error)
	Pending(ctx context.Context, createdBefore time.Time) ([]Order, error)
}

const orderColumns = "id, customer_name, customer_email, customer_phone, shipping_address, city, province, postal_code, notes, total_amount, payment_method, status, created_at"

// SQLRepository implements Repository on database/sql.
type SQLRepository struct {
	db       *sql.DB
	driver   string
	names    cache.Store
	namesTTL time.Duration
	now      func() time.Time
}

// NewSQLRepository creates a repository. driver is a DB_CONNECTION value;
// product names are cached in names for ttl.
func NewSQLRepository(db *sql.DB, driver string, names cache.Store, ttl time.Duration) *SQLRepository {
	if names == nil {
		names = cache.NullStore{}
	}
	return &SQLRepository{db: db, driver: driver, names: names, namesTTL: ttl, now: time.Now}
}

func (r *SQLRepository) rebind(query string) string {
	return sqldb.RebindFor(r.driver, query)
}

func (r *SQLRepository) Create(ctx context.Context, order *Order, items []Item) error {
	order.ID = uuid.NewString()
	order.CreatedAt = r.now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, r.rebind("INSERT INTO orders ("+orderColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"),
		order.ID, order.CustomerName, order.CustomerEmail, order.CustomerPhone, order.ShippingAddress,
		order.City, order.Province, nullString(order.PostalCode), nullString(order.Notes),
		order.TotalAmount, order.PaymentMethod, string(order.Status), order.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := r.rebind("INSERT INTO order_items (order_id, product_id, quantity, price, size, color) VALUES (?, ?, ?, ?, ?, ?)")
	for _, item := range items {
		if _, err := tx.ExecContext(ctx, itemQuery, order.ID, item.ProductID, item.Quantity, item.Price, nullString(item.Size), nullString(item.Color)); err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}
	}

	return tx.Commit()
}

func (r *SQLRepository) Find(ctx context.Context, id string) (*Order, error) {
	row := r.db.QueryRowContext(ctx, r.rebind("SELECT "+orderColumns+" FROM orders WHERE id = ?"), id)
	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	return order, err
}

func (r *SQLRepository) SetStatus(ctx context.Context, id string, status Status) error {
	res, err := r.db.ExecContext(ctx, r.rebind("UPDATE orders SET status = ? WHERE id = ?"), string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *SQLRepository) Items(ctx context.Context, orderID string) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, r.rebind("SELECT product_id, quantity, price, size, color FROM order_items WHERE order_id = ?"), orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		var size, color sql.NullString
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.Price, &size, &color); err != nil {
			return nil, err
		}
		item.Size, item.Color = size.String, color.String
		items = append(items, item)
	}
	return items, rows.Err()
}

// ProductNames serves names from the cache and loads every miss with a
// single query.
func (r *SQLRepository) ProductNames(ctx context.Context, ids []string) (map[string]string, error) {
	return cache.RememberMany(ctx, r.names, "product_name:", ids, r.namesTTL, r.loadProductNames)
}

func (r *SQLRepository) loadProductNames(ctx context.Context, ids []string) (map[string]string, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, r.rebind("SELECT id, name FROM products WHERE id IN ("+placeholders+")"), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[string]string, len(ids))
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}

func (r *SQLRepository) Pending(ctx context.Context, createdBefore time.Time) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx,
		r.rebind("SELECT "+orderColumns+" FROM orders WHERE status = ? AND created_at <= ? ORDER BY created_at ASC"),
		string(StatusPending), createdBefore)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (*Order, error) {
	var o Order
	var email, postal, notes sql.NullString
	var status string
	err := s.Scan(&o.ID, &o.CustomerName, &email, &o.CustomerPhone, &o.ShippingAddress,
		&o.City, &o.Province, &postal, &notes, &o.TotalAmount, &o.PaymentMethod, &status, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	o.CustomerEmail = strings.TrimSpace(email.String)
	o.PostalCode, o.Notes = postal.String, notes.String
	o.Status = Status(status)
	return &o, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
