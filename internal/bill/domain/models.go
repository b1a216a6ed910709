// Package domain contains persistence models for bills and their line items.
package domain

import (
	"time"

	clientdomain "github.com/ormgarage/facturation/internal/client/domain"
	"github.com/shopspring/decimal"
)

// Bill is an invoice header. Total is a derived field: it always equals the
// sum of the items' line totals at last write.
type Bill struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	ClientID  int64           `gorm:"not null;index" json:"client_id"`
	Date      time.Time       `gorm:"not null" json:"date"`
	Total     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	Paid      bool            `gorm:"not null;default:false" json:"paid"`
	CreatedAt time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Bill) TableName() string { return "bills" }

// BillItem is one invoice line. Price is stored redundantly and always equals
// quantity times unit price.
type BillItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	BillID    int64           `gorm:"not null;index" json:"bill_id"`
	Name      string          `gorm:"not null" json:"name"`
	Quantity  int64           `gorm:"not null;default:1" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (BillItem) TableName() string { return "bill_items" }

// Aggregate is a bill with its ordered items and resolved client, treated as
// one consistency unit. Client is nil when the referenced client row no
// longer exists.
type Aggregate struct {
	Bill
	Items  []BillItem           `json:"items"`
	Client *clientdomain.Client `json:"client,omitempty"`
}
