package domain

import (
	"context"

	"gorm.io/gorm"
)

// Repository exposes client persistence. Every method takes the handle to run
// against so services can pass a transaction.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, client *Client) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Client, error)
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*Client, error)
	FindByNameAndPhone(ctx context.Context, db *gorm.DB, name, phone string) (*Client, error)
	LastByCode(ctx context.Context, db *gorm.DB) (*Client, error)
	List(ctx context.Context, db *gorm.DB, search string) ([]Client, error)
	Update(ctx context.Context, db *gorm.DB, client *Client) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
	BillSummaries(ctx context.Context, db *gorm.DB, clientIDs []int64) ([]BillSummary, error)
}
