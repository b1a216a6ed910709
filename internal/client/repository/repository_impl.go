package repository

import (
	"context"
	"errors"

	"github.com/ormgarage/facturation/internal/client/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, client *domain.Client) error {
	return db.WithContext(ctx).Create(client).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Client, error) {
	var client domain.Client
	err := db.WithContext(ctx).First(&client, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *repo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*domain.Client, error) {
	var client domain.Client
	err := db.WithContext(ctx).First(&client, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *repo) FindByNameAndPhone(ctx context.Context, db *gorm.DB, name, phone string) (*domain.Client, error) {
	var client domain.Client
	err := db.WithContext(ctx).First(&client, "name = ? AND phone = ?", name, phone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *repo) LastByCode(ctx context.Context, db *gorm.DB) (*domain.Client, error) {
	var client domain.Client
	err := db.WithContext(ctx).Order("code desc").First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, search string) ([]domain.Client, error) {
	var clients []domain.Client
	stmt := db.WithContext(ctx).Model(&domain.Client{})
	if search != "" {
		pattern := "%" + search + "%"
		stmt = stmt.Where("name LIKE ? OR code LIKE ?", pattern, pattern)
	}
	err := stmt.Order("created_at desc, id desc").Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, client *domain.Client) error {
	return db.WithContext(ctx).Exec(
		`UPDATE clients SET name = ?, phone = ?, code = ?, updated_at = ? WHERE id = ?`,
		client.Name,
		client.Phone,
		client.Code,
		client.UpdatedAt,
		client.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Exec(`DELETE FROM clients WHERE id = ?`, id).Error
}

func (r *repo) BillSummaries(ctx context.Context, db *gorm.DB, clientIDs []int64) ([]domain.BillSummary, error) {
	if len(clientIDs) == 0 {
		return nil, nil
	}
	var summaries []domain.BillSummary
	err := db.WithContext(ctx).Raw(
		`SELECT client_id, total, paid FROM bills WHERE client_id IN ?`,
		clientIDs,
	).Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}
