package bill

import (
	"github.com/ormgarage/facturation/internal/bill/repository"
	"github.com/ormgarage/facturation/internal/bill/service"
	"go.uber.org/fx"
)

var Module = fx.Module("bill.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
