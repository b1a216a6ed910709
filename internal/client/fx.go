package client

import (
	"github.com/ormgarage/facturation/internal/client/repository"
	"github.com/ormgarage/facturation/internal/client/service"
	"go.uber.org/fx"
)

var Module = fx.Module("client.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New, service.ProvideService, service.ProvideResolver),
)
