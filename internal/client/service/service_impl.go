package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ormgarage/facturation/internal/client/domain"
	"github.com/ormgarage/facturation/pkg/db"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// codePattern extracts the numeric suffix of a sequential client code.
var codePattern = regexp.MustCompile(`CL(\d+)`)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) *Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("client.service"),
		repo: p.Repo,
	}
}

func ProvideService(s *Service) domain.Service { return s }

func ProvideResolver(s *Service) domain.Resolver { return s }

func (s *Service) List(ctx context.Context, req domain.ListClientRequest) ([]domain.ClientWithStats, error) {
	clients, err := s.repo.List(ctx, s.db, strings.TrimSpace(req.Search))
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(clients))
	for _, client := range clients {
		ids = append(ids, client.ID)
	}

	summaries, err := s.repo.BillSummaries(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}

	billed := make(map[int64]decimal.Decimal, len(clients))
	paid := make(map[int64]decimal.Decimal, len(clients))
	unpaid := make(map[int64]bool, len(clients))
	for _, summary := range summaries {
		billed[summary.ClientID] = billed[summary.ClientID].Add(summary.Total)
		if summary.Paid {
			paid[summary.ClientID] = paid[summary.ClientID].Add(summary.Total)
		} else {
			unpaid[summary.ClientID] = true
		}
	}

	out := make([]domain.ClientWithStats, 0, len(clients))
	for _, client := range clients {
		status := "Paid"
		if unpaid[client.ID] {
			status = "Unpaid"
		}
		out = append(out, domain.ClientWithStats{
			Client:         client,
			TotalBilled:    billed[client.ID],
			TotalPaid:      paid[client.ID],
			HasUnpaidBills: unpaid[client.ID],
			PaymentStatus:  status,
		})
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (domain.Client, error) {
	client, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Client{}, err
	}
	if client == nil {
		return domain.Client{}, domain.ErrNotFound
	}
	return *client, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateClientRequest) (domain.Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Client{}, domain.ErrInvalidName
	}
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return domain.Client{}, domain.ErrInvalidPhone
	}

	var created domain.Client
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		code := strings.TrimSpace(req.Code)
		if code == "" {
			next, err := s.nextCode(ctx, tx)
			if err != nil {
				return err
			}
			code = next
		} else {
			existing, err := s.repo.FindByCode(ctx, tx, code)
			if err != nil {
				return err
			}
			if existing != nil {
				return domain.ErrCodeTaken
			}
		}

		now := time.Now().UTC()
		created = domain.Client{
			Name:      name,
			Phone:     phone,
			Code:      code,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return s.repo.Insert(ctx, tx, &created)
	})
	if db.IsDuplicateKeyErr(err) {
		return domain.Client{}, domain.ErrCodeTaken
	}
	if err != nil {
		return domain.Client{}, err
	}

	s.log.Info("client created",
		zap.Int64("client_id", created.ID),
		zap.String("code", created.Code),
	)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, req domain.UpdateClientRequest) (domain.Client, error) {
	var updated domain.Client
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		client, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if client == nil {
			return domain.ErrNotFound
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return domain.ErrInvalidName
			}
			client.Name = name
		}
		if req.Phone != nil {
			phone := strings.TrimSpace(*req.Phone)
			if phone == "" {
				return domain.ErrInvalidPhone
			}
			client.Phone = phone
		}
		if req.Code != nil {
			code := strings.TrimSpace(*req.Code)
			if code != "" && code != client.Code {
				existing, err := s.repo.FindByCode(ctx, tx, code)
				if err != nil {
					return err
				}
				if existing != nil {
					return domain.ErrCodeTaken
				}
				client.Code = code
			}
		}

		client.UpdatedAt = time.Now().UTC()
		if err := s.repo.Update(ctx, tx, client); err != nil {
			return err
		}
		updated = *client
		return nil
	})
	if db.IsDuplicateKeyErr(err) {
		return domain.Client{}, domain.ErrCodeTaken
	}
	if err != nil {
		return domain.Client{}, err
	}
	return updated, nil
}

// Delete removes the client row only. Bills referencing the client are left
// in place with a dangling client_id; see DESIGN.md for the policy.
func (s *Service) Delete(ctx context.Context, id int64) error {
	client, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, id)
}

func (s *Service) ResolveOrCreate(ctx context.Context, tx *gorm.DB, name, phone string) (domain.Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Client{}, domain.ErrInvalidName
	}
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return domain.Client{}, domain.ErrInvalidPhone
	}

	existing, err := s.repo.FindByNameAndPhone(ctx, tx, name, phone)
	if err != nil {
		return domain.Client{}, err
	}
	if existing != nil {
		return *existing, nil
	}

	code, err := s.nextCode(ctx, tx)
	if err != nil {
		return domain.Client{}, err
	}

	now := time.Now().UTC()
	client := domain.Client{
		Name:      name,
		Phone:     phone,
		Code:      code,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, tx, &client); err != nil {
		return domain.Client{}, err
	}

	s.log.Info("client resolved",
		zap.Int64("client_id", client.ID),
		zap.String("code", client.Code),
	)
	return client, nil
}

func (s *Service) FindByID(ctx context.Context, tx *gorm.DB, id int64) (*domain.Client, error) {
	return s.repo.FindByID(ctx, tx, id)
}

// nextCode reads the lexicographically-maximal code and increments its numeric
// suffix. Numbering restarts at CL001 when no code matches the pattern. Two
// concurrent creations can compute the same code; the unique index on
// clients.code turns the lost race into a conflict instead of a duplicate.
func (s *Service) nextCode(ctx context.Context, tx *gorm.DB) (string, error) {
	last, err := s.repo.LastByCode(ctx, tx)
	if err != nil {
		return "", err
	}

	next := int64(1)
	if last != nil {
		if match := codePattern.FindStringSubmatch(last.Code); match != nil {
			parsed, err := strconv.ParseInt(match[1], 10, 64)
			if err == nil {
				next = parsed + 1
			}
		}
	}

	return fmt.Sprintf("CL%03d", next), nil
}
