// Seeds a local database with a small marketplace: an admin, two vendors,
// two users, bookings in every status, and a completed booking so the vendor
// payout balance is nonzero.
package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"servicemarket/internal/config"
	"servicemarket/internal/database"
	"servicemarket/internal/domain"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	admin := seedUser(db, "admin@example.com", "Admin", domain.RoleAdmin)
	vendorA := seedUser(db, "vendor.a@example.com", "Vendor A", domain.RoleVendor)
	vendorB := seedUser(db, "vendor.b@example.com", "Vendor B", domain.RoleVendor)
	alice := seedUser(db, "alice@example.com", "Alice", domain.RoleUser)
	bob := seedUser(db, "bob@example.com", "Bob", domain.RoleUser)

	log.Printf("level=info msg=seeded users admin=%d vendors=%d,%d users=%d,%d",
		admin.ID, vendorA.ID, vendorB.ID, alice.ID, bob.ID)

	// Alice has a completed booking with vendor A: $20 + 2 x $15 = $50 earned.
	seedBooking(db, alice.ID, vendorA.ID, domain.BookingCompleted, -14, []domain.BookingSubPackage{
		{PackageID: 1, SubPackageID: 11, Price: 20, Quantity: 1},
		{PackageID: 1, SubPackageID: 12, Price: 15, Quantity: 2},
	})

	// Bob's booking with vendor A is still pending; it must not count toward
	// the payout balance.
	seedBooking(db, bob.ID, vendorA.ID, domain.BookingPending, 7, []domain.BookingSubPackage{
		{PackageID: 2, SubPackageID: 21, Price: 40, Quantity: 1},
	})

	seedBooking(db, alice.ID, vendorB.ID, domain.BookingConfirmed, 3, []domain.BookingSubPackage{
		{PackageID: 3, SubPackageID: 31, Price: 60, Quantity: 1},
	})

	log.Printf("level=info msg=seed complete")
}

func seedUser(db *gorm.DB, email, name string, role domain.UserRole) *domain.User {
	var existing domain.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return &existing
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	u := &domain.User{
		Email:         email,
		PasswordHash:  string(hash),
		Name:          name,
		Role:          role,
		EmailVerified: true,
	}
	if err := db.Create(u).Error; err != nil {
		log.Fatal(err)
	}
	return u
}

func seedBooking(db *gorm.DB, userID, vendorID int64, status domain.BookingStatus, daysFromNow int, subs []domain.BookingSubPackage) {
	b := &domain.Booking{
		UserID:        userID,
		VendorID:      vendorID,
		CategoryID:    1,
		ServiceID:     1,
		ServiceTypeID: 1,
		ScheduledDate: time.Now().AddDate(0, 0, daysFromNow).Truncate(24 * time.Hour),
		ScheduledTime: "14:00",
		Status:        status,
		SubPackages:   subs,
	}

	seen := map[int64]bool{}
	for _, sp := range subs {
		if !seen[sp.PackageID] {
			seen[sp.PackageID] = true
			b.Packages = append(b.Packages, domain.BookingPackage{PackageID: sp.PackageID})
		}
	}

	if err := db.Create(b).Error; err != nil {
		log.Fatal(err)
	}
	log.Printf("level=info msg=seeded booking id=%d vendor_id=%d status=%s total=%.2f",
		b.ID, vendorID, status, b.Total())
}
