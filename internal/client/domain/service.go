package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type CreateClientRequest struct {
	Name  string
	Phone string
	Code  string
}

type UpdateClientRequest struct {
	Name  *string
	Phone *string
	Code  *string
}

type ListClientRequest struct {
	Search string
}

type Service interface {
	List(context.Context, ListClientRequest) ([]ClientWithStats, error)
	GetByID(ctx context.Context, id int64) (Client, error)
	Create(context.Context, CreateClientRequest) (Client, error)
	Update(ctx context.Context, id int64, req UpdateClientRequest) (Client, error)
	Delete(ctx context.Context, id int64) error
}

// Resolver finds-or-creates a client for the bill creation flow. It runs on
// the caller's handle so resolution joins the bill transaction.
type Resolver interface {
	ResolveOrCreate(ctx context.Context, db *gorm.DB, name, phone string) (Client, error)
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Client, error)
}

var (
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidPhone = errors.New("invalid_phone")
	ErrCodeTaken    = errors.New("code_taken")
	ErrNotFound     = errors.New("not_found")
)
