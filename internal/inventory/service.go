package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"warehouseManagement/models"
	"warehouseManagement/repository"
)

// ErrValidation marks input that must be rejected before reaching the store.
var ErrValidation = errors.New("validation failed")

// Service implements the inventory record lifecycle: upsert-by-name saves,
// listing, and low-stock derivation.
type Service struct {
	items repository.InventoryRepositoryI
	now   func() time.Time
}

func NewService(items repository.InventoryRepositoryI) *Service {
	return &Service{items: items, now: time.Now}
}

// SaveItem validates the quantities and upserts the record keyed on the item
// name, stamping last_updated with the current local time at minute
// granularity. The same operation serves both add and edit; an empty item
// name is a valid, if degenerate, key.
func (s *Service) SaveItem(ctx context.Context, item, category string, stock, reorderLevel int64) (*models.InventoryItem, error) {
	if stock < 0 {
		return nil, fmt.Errorf("%w: stock must be >= 0", ErrValidation)
	}
	if reorderLevel < 0 {
		return nil, fmt.Errorf("%w: reorder level must be >= 0", ErrValidation)
	}
	it := &models.InventoryItem{
		Item:         item,
		Category:     category,
		Stock:        stock,
		ReorderLevel: reorderLevel,
		LastUpdated:  s.now().Format(models.LastUpdatedLayout),
	}
	if err := s.items.Upsert(ctx, it); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}
	return it, nil
}

// ListItems returns all inventory rows ordered by item name.
func (s *Service) ListItems(ctx context.Context) ([]models.InventoryItem, error) {
	return s.items.List(ctx)
}

// LowStockItems returns the items with stock at or below their reorder level.
func (s *Service) LowStockItems(ctx context.Context) ([]models.InventoryItem, error) {
	return s.items.ListLowStock(ctx)
}

func (s *Service) TotalCount(ctx context.Context) (int64, error) {
	return s.items.Count(ctx)
}

func (s *Service) LowStockCount(ctx context.Context) (int64, error) {
	return s.items.LowStockCount(ctx)
}

// Summary is the stock-analysis view data: the two headline counts plus the
// low-stock rows themselves.
type Summary struct {
	TotalItems    int64                  `json:"total_items"`
	LowStockItems int64                  `json:"low_stock_items"`
	LowStock      []models.InventoryItem `json:"low_stock"`
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	total, err := s.items.Count(ctx)
	if err != nil {
		return nil, err
	}
	low, err := s.items.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return &Summary{
		TotalItems:    total,
		LowStockItems: int64(len(low)),
		LowStock:      low,
	}, nil
}
