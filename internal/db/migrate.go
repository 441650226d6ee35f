package db

import (
	"tradingvault/internal/models"
)

// AutoMigrateUserStore migrates the tables this service owns. The signal
// store is deliberately excluded: signals_with_rates belongs to the
// upstream analysis pipeline and is read-only here.
func AutoMigrateUserStore(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.Subscriber{},
		&models.WebhookEvent{},
	)
}
