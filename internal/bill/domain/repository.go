package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Repository exposes bill persistence. Every method takes the handle to run
// against so services can pass a transaction.
type Repository interface {
	InsertBill(ctx context.Context, db *gorm.DB, bill *Bill) error
	FindBillByID(ctx context.Context, db *gorm.DB, id int64) (*Bill, error)
	UpdateBill(ctx context.Context, db *gorm.DB, bill *Bill) error
	UpdatePaid(ctx context.Context, db *gorm.DB, id int64, paid bool, updatedAt time.Time) error
	DeleteBill(ctx context.Context, db *gorm.DB, id int64) error
	ListBillsByClient(ctx context.Context, db *gorm.DB, clientID int64) ([]Bill, error)

	InsertItem(ctx context.Context, db *gorm.DB, item *BillItem) error
	ListItemsByBill(ctx context.Context, db *gorm.DB, billID int64) ([]BillItem, error)
	DeleteItemsByBill(ctx context.Context, db *gorm.DB, billID int64) error
}
