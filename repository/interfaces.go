package repository

import (
	"context"

	"warehouseManagement/models"
)

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	CreateIfAbsent(ctx context.Context, u *models.User) error
	List(ctx context.Context) ([]models.User, error)
	UpdatePassword(ctx context.Context, username, password string) error
}

// InventoryRepositoryI defines operations on InventoryItem entities.
type InventoryRepositoryI interface {
	Upsert(ctx context.Context, it *models.InventoryItem) error
	GetByName(ctx context.Context, item string) (*models.InventoryItem, error)
	List(ctx context.Context) ([]models.InventoryItem, error)
	ListLowStock(ctx context.Context) ([]models.InventoryItem, error)
	Count(ctx context.Context) (int64, error)
	LowStockCount(ctx context.Context) (int64, error)
}
