package main

import (
	"github.com/ormgarage/facturation/internal/bill"
	"github.com/ormgarage/facturation/internal/client"
	"github.com/ormgarage/facturation/internal/config"
	"github.com/ormgarage/facturation/internal/migration"
	"github.com/ormgarage/facturation/internal/observability"
	"github.com/ormgarage/facturation/internal/providers/pdf"
	"github.com/ormgarage/facturation/internal/server"
	"github.com/ormgarage/facturation/pkg/db"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		db.Module,
		migration.Module,

		// Functional domains
		client.Module,
		bill.Module,
		pdf.Module,

		server.Module,
	).Run()
}
