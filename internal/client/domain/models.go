// Package domain contains persistence models for billable clients.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client represents a billable party identified by a unique sequential code.
type Client struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Phone     string    `gorm:"not null" json:"phone"`
	Code      string    `gorm:"uniqueIndex;not null" json:"code"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Client) TableName() string { return "clients" }

// ClientWithStats annotates a client with aggregates over its bills.
type ClientWithStats struct {
	Client
	TotalBilled    decimal.Decimal `json:"total_billed"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	HasUnpaidBills bool            `json:"has_unpaid_bills"`
	PaymentStatus  string          `json:"payment_status"`
}

// BillSummary is the slice of a bill needed to compute client stats.
type BillSummary struct {
	ClientID int64           `json:"client_id"`
	Total    decimal.Decimal `json:"total"`
	Paid     bool            `json:"paid"`
}
