package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ormgarage/facturation/internal/bill/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertBill(ctx context.Context, db *gorm.DB, bill *domain.Bill) error {
	return db.WithContext(ctx).Create(bill).Error
}

func (r *repo) FindBillByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Bill, error) {
	var bill domain.Bill
	err := db.WithContext(ctx).First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *repo) UpdateBill(ctx context.Context, db *gorm.DB, bill *domain.Bill) error {
	return db.WithContext(ctx).Exec(
		`UPDATE bills SET date = ?, total = ?, updated_at = ? WHERE id = ?`,
		bill.Date,
		bill.Total,
		bill.UpdatedAt,
		bill.ID,
	).Error
}

func (r *repo) UpdatePaid(ctx context.Context, db *gorm.DB, id int64, paid bool, updatedAt time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE bills SET paid = ?, updated_at = ? WHERE id = ?`,
		paid,
		updatedAt,
		id,
	).Error
}

func (r *repo) DeleteBill(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Exec(`DELETE FROM bills WHERE id = ?`, id).Error
}

func (r *repo) ListBillsByClient(ctx context.Context, db *gorm.DB, clientID int64) ([]domain.Bill, error) {
	var bills []domain.Bill
	err := db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("date desc, id desc").
		Find(&bills).Error
	if err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *repo) InsertItem(ctx context.Context, db *gorm.DB, item *domain.BillItem) error {
	return db.WithContext(ctx).Create(item).Error
}

func (r *repo) ListItemsByBill(ctx context.Context, db *gorm.DB, billID int64) ([]domain.BillItem, error) {
	var items []domain.BillItem
	err := db.WithContext(ctx).
		Where("bill_id = ?", billID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) DeleteItemsByBill(ctx context.Context, db *gorm.DB, billID int64) error {
	return db.WithContext(ctx).Exec(`DELETE FROM bill_items WHERE bill_id = ?`, billID).Error
}
