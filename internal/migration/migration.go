package migration

import (
	billdomain "github.com/ormgarage/facturation/internal/bill/domain"
	clientdomain "github.com/ormgarage/facturation/internal/client/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migration",
	fx.Invoke(Run),
)

// Run synchronizes the schema on startup so the app is usable out of the box
// on a fresh database.
func Run(db *gorm.DB, log *zap.Logger) error {
	if err := db.AutoMigrate(
		&clientdomain.Client{},
		&billdomain.Bill{},
		&billdomain.BillItem{},
	); err != nil {
		log.Error("schema migration failed", zap.Error(err))
		return err
	}

	log.Info("schema up to date")
	return nil
}
