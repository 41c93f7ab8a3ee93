package models

// LastUpdatedLayout is the timestamp layout stored in inventory.last_updated:
// local time, minute precision, no timezone.
const LastUpdatedLayout = "2006-01-02 15:04"

// InventoryItem represents one stocked item.
// It maps to the `inventory` table in SQLite; the item name is the key, so
// saving an existing name overwrites the row in place.
type InventoryItem struct {
	Item         string `db:"item" json:"item"`
	Category     string `db:"category" json:"category"`
	Stock        int64  `db:"stock" json:"stock"`
	ReorderLevel int64  `db:"reorder_level" json:"reorder_level"`
	LastUpdated  string `db:"last_updated" json:"last_updated"`
}

// LowStock reports whether the item is at or below its reorder threshold.
func (i InventoryItem) LowStock() bool {
	return i.Stock <= i.ReorderLevel
}

// StockForecast is the projected stock level for one item.
type StockForecast struct {
	Item           string `json:"item"`
	CurrentStock   int64  `json:"current_stock"`
	ProjectedStock int64  `json:"projected_stock"`
}
