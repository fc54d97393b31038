package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"servicemarket/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate keeps the dev/test schema in sync. Production runs SQL migrations
// out of band; AutoMigrate stays safe to call either way.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Cart{},
		&domain.CartPackage{},
		&domain.CartSubPackage{},
		&domain.CartPreference{},
		&domain.Booking{},
		&domain.BookingPackage{},
		&domain.BookingSubPackage{},
		&domain.BookingPreference{},
		&domain.Payment{},
		&domain.PayoutRequest{},
		&domain.Rating{},
		&domain.Notification{},
	)
}
