package forecast

import (
	"context"

	"warehouseManagement/models"
	"warehouseManagement/repository"
)

// stockOffset is the fixed projection delta. The "forecast" is a constant
// additive offset over current stock, not a statistical model; downstream
// consumers depend on this exact output.
const stockOffset = 10

// Service derives projected stock levels from current inventory.
type Service struct {
	items repository.InventoryRepositoryI
}

func NewService(items repository.InventoryRepositoryI) *Service {
	return &Service{items: items}
}

// Forecast projects stock for the given items unconditionally, including
// items with zero stock.
func Forecast(items []models.InventoryItem) []models.StockForecast {
	out := make([]models.StockForecast, 0, len(items))
	for _, it := range items {
		out = append(out, models.StockForecast{
			Item:           it.Item,
			CurrentStock:   it.Stock,
			ProjectedStock: it.Stock + stockOffset,
		})
	}
	return out
}

// ForecastAll reads the full inventory and projects every item.
func (s *Service) ForecastAll(ctx context.Context) ([]models.StockForecast, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}
	return Forecast(items), nil
}
