package service

import (
	"context"
	"strings"
	"time"

	"github.com/ormgarage/facturation/internal/bill/domain"
	clientdomain "github.com/ormgarage/facturation/internal/client/domain"
	"github.com/ormgarage/facturation/internal/money"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Repo    domain.Repository
	Clients clientdomain.Resolver
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	repo    domain.Repository
	clients clientdomain.Resolver
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("bill.service"),
		repo:    p.Repo,
		clients: p.Clients,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateBillRequest) (domain.Aggregate, error) {
	items, total, err := buildItems(req.Items)
	if err != nil {
		return domain.Aggregate{}, err
	}

	var billID int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		clientID, err := s.resolveClientID(ctx, tx, req)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		date := now
		if req.Date != nil {
			date = req.Date.UTC()
		}

		bill := domain.Bill{
			ClientID:  clientID,
			Date:      date,
			Total:     total,
			Paid:      false,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.repo.InsertBill(ctx, tx, &bill); err != nil {
			return err
		}

		for i := range items {
			items[i].BillID = bill.ID
			items[i].CreatedAt = now
			if err := s.repo.InsertItem(ctx, tx, &items[i]); err != nil {
				return err
			}
		}

		billID = bill.ID
		return nil
	})
	if err != nil {
		return domain.Aggregate{}, err
	}

	s.log.Info("bill created",
		zap.Int64("bill_id", billID),
		zap.String("total", money.Format(total)),
		zap.Int("items", len(items)),
	)
	return s.GetByID(ctx, billID)
}

func (s *Service) Update(ctx context.Context, id int64, req domain.UpdateBillRequest) (domain.Aggregate, error) {
	items, total, err := buildItems(req.Items)
	if err != nil {
		return domain.Aggregate{}, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bill, err := s.repo.FindBillByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if bill == nil {
			return domain.ErrNotFound
		}

		now := time.Now().UTC()
		if req.Date != nil {
			bill.Date = req.Date.UTC()
		}
		bill.Total = total
		bill.UpdatedAt = now
		if err := s.repo.UpdateBill(ctx, tx, bill); err != nil {
			return err
		}

		// Wholesale item replacement: delete all, then insert the new set.
		if err := s.repo.DeleteItemsByBill(ctx, tx, id); err != nil {
			return err
		}
		for i := range items {
			items[i].BillID = id
			items[i].CreatedAt = now
			if err := s.repo.InsertItem(ctx, tx, &items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Aggregate{}, err
	}

	s.log.Info("bill updated",
		zap.Int64("bill_id", id),
		zap.String("total", money.Format(total)),
		zap.Int("items", len(items)),
	)
	return s.GetByID(ctx, id)
}

func (s *Service) SetPaid(ctx context.Context, id int64, paid bool) (domain.Bill, error) {
	bill, err := s.repo.FindBillByID(ctx, s.db, id)
	if err != nil {
		return domain.Bill{}, err
	}
	if bill == nil {
		return domain.Bill{}, domain.ErrNotFound
	}

	now := time.Now().UTC()
	if err := s.repo.UpdatePaid(ctx, s.db, id, paid, now); err != nil {
		return domain.Bill{}, err
	}

	bill.Paid = paid
	bill.UpdatedAt = now
	return *bill, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bill, err := s.repo.FindBillByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if bill == nil {
			return domain.ErrNotFound
		}

		if err := s.repo.DeleteItemsByBill(ctx, tx, id); err != nil {
			return err
		}
		return s.repo.DeleteBill(ctx, tx, id)
	})
}

func (s *Service) GetByID(ctx context.Context, id int64) (domain.Aggregate, error) {
	bill, err := s.repo.FindBillByID(ctx, s.db, id)
	if err != nil {
		return domain.Aggregate{}, err
	}
	if bill == nil {
		return domain.Aggregate{}, domain.ErrNotFound
	}
	return s.loadAggregate(ctx, *bill, nil)
}

func (s *Service) ListByClient(ctx context.Context, clientID int64) ([]domain.Aggregate, error) {
	bills, err := s.repo.ListBillsByClient(ctx, s.db, clientID)
	if err != nil {
		return nil, err
	}

	client, err := s.clients.FindByID(ctx, s.db, clientID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Aggregate, 0, len(bills))
	for _, bill := range bills {
		aggregate, err := s.loadAggregate(ctx, bill, client)
		if err != nil {
			return nil, err
		}
		out = append(out, aggregate)
	}
	return out, nil
}

func (s *Service) loadAggregate(ctx context.Context, bill domain.Bill, client *clientdomain.Client) (domain.Aggregate, error) {
	items, err := s.repo.ListItemsByBill(ctx, s.db, bill.ID)
	if err != nil {
		return domain.Aggregate{}, err
	}

	if client == nil {
		client, err = s.clients.FindByID(ctx, s.db, bill.ClientID)
		if err != nil {
			return domain.Aggregate{}, err
		}
	}

	return domain.Aggregate{
		Bill:   bill,
		Items:  items,
		Client: client,
	}, nil
}

func (s *Service) resolveClientID(ctx context.Context, tx *gorm.DB, req domain.CreateBillRequest) (int64, error) {
	name := strings.TrimSpace(req.ClientName)
	phone := strings.TrimSpace(req.ClientPhone)
	if name != "" && phone != "" {
		client, err := s.clients.ResolveOrCreate(ctx, tx, name, phone)
		if err != nil {
			return 0, err
		}
		return client.ID, nil
	}

	if req.ClientID == nil || *req.ClientID == 0 {
		return 0, domain.ErrMissingClient
	}
	client, err := s.clients.FindByID(ctx, tx, *req.ClientID)
	if err != nil {
		return 0, err
	}
	if client == nil {
		return 0, clientdomain.ErrNotFound
	}
	return client.ID, nil
}

// buildItems validates the requested lines and computes each line total plus
// the bill total.
func buildItems(inputs []domain.ItemInput) ([]domain.BillItem, decimal.Decimal, error) {
	if len(inputs) == 0 {
		return nil, decimal.Zero, domain.ErrEmptyItems
	}

	items := make([]domain.BillItem, 0, len(inputs))
	totals := make([]decimal.Decimal, 0, len(inputs))
	for _, input := range inputs {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return nil, decimal.Zero, domain.ErrInvalidItemName
		}
		if input.UnitPrice == nil {
			return nil, decimal.Zero, domain.ErrMissingUnitPrice
		}

		quantity := money.NormalizeQuantity(input.Quantity)
		price := money.LineTotal(quantity, *input.UnitPrice)
		items = append(items, domain.BillItem{
			Name:      name,
			Quantity:  quantity,
			UnitPrice: *input.UnitPrice,
			Price:     price,
		})
		totals = append(totals, price)
	}

	return items, money.Sum(totals...), nil
}
