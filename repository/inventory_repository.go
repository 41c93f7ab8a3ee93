package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"warehouseManagement/models"
)

type InventoryRepository struct {
	db *sql.DB
}

func NewInventoryRepository(db *sql.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// Upsert inserts the item or, when the name already exists, overwrites all
// mutable columns of the existing row. Single statement, so the write is
// atomic per item under SQLite autocommit.
func (r *InventoryRepository) Upsert(ctx context.Context, it *models.InventoryItem) error {
	if it == nil {
		return errors.New("item is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `INSERT INTO inventory (item, category, stock, reorder_level, last_updated) VALUES (?,?,?,?,?)
        ON CONFLICT(item) DO UPDATE SET
        category=excluded.category,
        stock=excluded.stock,
        reorder_level=excluded.reorder_level,
        last_updated=excluded.last_updated`,
		it.Item, it.Category, it.Stock, it.ReorderLevel, it.LastUpdated)
	return err
}

func (r *InventoryRepository) GetByName(ctx context.Context, item string) (*models.InventoryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var it models.InventoryItem
	err := r.db.QueryRowContext(ctx, `SELECT item, category, stock, reorder_level, last_updated FROM inventory WHERE item = ?`, item).
		Scan(&it.Item, &it.Category, &it.Stock, &it.ReorderLevel, &it.LastUpdated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &it, nil
}

func (r *InventoryRepository) List(ctx context.Context) ([]models.InventoryItem, error) {
	return r.list(ctx, `SELECT item, category, stock, reorder_level, last_updated FROM inventory ORDER BY item`)
}

// ListLowStock returns the items whose stock is at or below the reorder
// threshold. The comparison is inclusive.
func (r *InventoryRepository) ListLowStock(ctx context.Context) ([]models.InventoryItem, error) {
	return r.list(ctx, `SELECT item, category, stock, reorder_level, last_updated FROM inventory WHERE stock <= reorder_level ORDER BY item`)
}

func (r *InventoryRepository) list(ctx context.Context, query string) ([]models.InventoryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.InventoryItem
	for rows.Next() {
		var it models.InventoryItem
		if err := rows.Scan(&it.Item, &it.Category, &it.Stock, &it.ReorderLevel, &it.LastUpdated); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *InventoryRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM inventory`)
}

func (r *InventoryRepository) LowStockCount(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM inventory WHERE stock <= reorder_level`)
}

func (r *InventoryRepository) count(ctx context.Context, query string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n int64
	if err := r.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
