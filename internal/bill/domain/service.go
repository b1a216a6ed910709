package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ItemInput is one requested invoice line. Quantity defaults to 1 when nil or
// below 1; a nil UnitPrice fails validation.
type ItemInput struct {
	Name      string
	Quantity  *int64
	UnitPrice *decimal.Decimal
}

// CreateBillRequest identifies the client either by id or by a name+phone
// pair resolved through the client resolver.
type CreateBillRequest struct {
	ClientID    *int64
	ClientName  string
	ClientPhone string
	Date        *time.Time
	Items       []ItemInput
}

type UpdateBillRequest struct {
	Date  *time.Time
	Items []ItemInput
}

type Service interface {
	Create(context.Context, CreateBillRequest) (Aggregate, error)
	Update(ctx context.Context, id int64, req UpdateBillRequest) (Aggregate, error)
	SetPaid(ctx context.Context, id int64, paid bool) (Bill, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (Aggregate, error)
	ListByClient(ctx context.Context, clientID int64) ([]Aggregate, error)
}

var (
	ErrMissingClient    = errors.New("missing_client")
	ErrEmptyItems       = errors.New("empty_items")
	ErrInvalidItemName  = errors.New("invalid_item_name")
	ErrMissingUnitPrice = errors.New("missing_unit_price")
	ErrNotFound         = errors.New("not_found")
)
