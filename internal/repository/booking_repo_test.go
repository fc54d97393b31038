package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"servicemarket/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repo_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(
		sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	err = db.AutoMigrate(
		&domain.User{},
		&domain.Cart{}, &domain.CartPackage{}, &domain.CartSubPackage{}, &domain.CartPreference{},
		&domain.Booking{}, &domain.BookingPackage{}, &domain.BookingSubPackage{}, &domain.BookingPreference{},
		&domain.Payment{},
		&domain.PayoutRequest{},
		&domain.Rating{},
		&domain.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	return db
}

func seedCart(t *testing.T, db *gorm.DB, userID int64, scheduled bool) *domain.Cart {
	t.Helper()
	c := &domain.Cart{
		UserID:        userID,
		VendorID:      7,
		CategoryID:    1,
		ServiceID:     2,
		ServiceTypeID: 3,
		ScheduledTime: "14:00",
		Status:        domain.CartActive,
		Packages: []domain.CartPackage{
			{PackageID: 10},
			{PackageID: 11},
		},
		SubPackages: []domain.CartSubPackage{
			{PackageID: 10, SubPackageID: 100, Price: 20, Quantity: 1},
			{PackageID: 10, SubPackageID: 101, Price: 15, Quantity: 2},
			{PackageID: 11, SubPackageID: 110, Price: 9.99, Quantity: 1},
		},
		Preferences: []domain.CartPreference{{Preference: "outdoor"}},
	}
	if scheduled {
		c.ScheduledDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	} else {
		c.ScheduledTime = ""
	}
	if err := NewCartRepository(db).CreateWithItems(context.Background(), c); err != nil {
		t.Fatalf("failed to seed cart: %v", err)
	}
	return c
}

func TestConvertCart_FreezesLinesAndDeletesCart(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	seedCart(t, db, 1, true)

	repo := NewBookingRepository(db)
	b, err := repo.ConvertCart(ctx, 1)
	if err != nil {
		t.Fatalf("ConvertCart returned error: %v", err)
	}

	if b.Status != domain.BookingPending {
		t.Fatalf("expected pending booking, got %s", b.Status)
	}
	if len(b.Packages) != 2 {
		t.Fatalf("expected 2 package rows, got %d", len(b.Packages))
	}
	if len(b.SubPackages) != 3 {
		t.Fatalf("expected 3 sub-package rows, got %d", len(b.SubPackages))
	}
	if len(b.Preferences) != 1 {
		t.Fatalf("expected 1 preference row, got %d", len(b.Preferences))
	}
	if got := b.Total(); got != 20+15*2+9.99 {
		t.Fatalf("expected frozen total %.2f, got %.2f", 20+15*2+9.99, got)
	}

	// Prices came from the cart rows, untouched.
	prices := map[int64]float64{}
	for _, sp := range b.SubPackages {
		prices[sp.SubPackageID] = sp.Price
	}
	if prices[100] != 20 || prices[101] != 15 || prices[110] != 9.99 {
		t.Fatalf("sub-package prices not preserved: %v", prices)
	}

	// The cart and all of its children are gone.
	var carts, pkgs, subs, prefs int64
	db.Model(&domain.Cart{}).Where("user_id = ?", 1).Count(&carts)
	db.Model(&domain.CartPackage{}).Count(&pkgs)
	db.Model(&domain.CartSubPackage{}).Count(&subs)
	db.Model(&domain.CartPreference{}).Count(&prefs)
	if carts+pkgs+subs+prefs != 0 {
		t.Fatalf("expected cart rows deleted, found carts=%d pkgs=%d subs=%d prefs=%d", carts, pkgs, subs, prefs)
	}
}

func TestConvertCart_NoCart(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository(db)

	_, err := repo.ConvertCart(context.Background(), 999)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}

func TestConvertCart_UnscheduledCartRejectedAndKept(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	seedCart(t, db, 1, false)

	repo := NewBookingRepository(db)
	_, err := repo.ConvertCart(ctx, 1)
	if !errors.Is(err, ErrCartNotSchedulable) {
		t.Fatalf("expected ErrCartNotSchedulable, got %v", err)
	}

	// Nothing converted, nothing lost.
	var bookings, carts int64
	db.Model(&domain.Booking{}).Count(&bookings)
	db.Model(&domain.Cart{}).Count(&carts)
	if bookings != 0 || carts != 1 {
		t.Fatalf("expected rollback to keep the cart, got bookings=%d carts=%d", bookings, carts)
	}
}

func TestConvertCart_SecondCheckoutFindsNothing(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	seedCart(t, db, 1, true)

	repo := NewBookingRepository(db)
	if _, err := repo.ConvertCart(ctx, 1); err != nil {
		t.Fatalf("first checkout failed: %v", err)
	}
	if _, err := repo.ConvertCart(ctx, 1); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected second checkout to find no cart, got %v", err)
	}

	var bookings int64
	db.Model(&domain.Booking{}).Count(&bookings)
	if bookings != 1 {
		t.Fatalf("expected exactly one booking, got %d", bookings)
	}
}

func TestHasCompletedBooking(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	b := &domain.Booking{
		UserID: 1, VendorID: 7,
		CategoryID: 1, ServiceID: 2, ServiceTypeID: 3,
		ScheduledDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		ScheduledTime: "14:00",
		Status:        domain.BookingConfirmed,
	}
	if err := db.Create(b).Error; err != nil {
		t.Fatalf("failed to seed booking: %v", err)
	}

	repo := NewBookingRepository(db)

	ok, err := repo.HasCompletedBooking(ctx, 1, 7, nil)
	if err != nil {
		t.Fatalf("HasCompletedBooking returned error: %v", err)
	}
	if ok {
		t.Fatal("confirmed booking should not count as completed")
	}

	if err := repo.UpdateStatus(ctx, b.ID, domain.BookingCompleted, "", ""); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}

	ok, err = repo.HasCompletedBooking(ctx, 1, 7, &b.ID)
	if err != nil {
		t.Fatalf("HasCompletedBooking returned error: %v", err)
	}
	if !ok {
		t.Fatal("completed booking should satisfy the gate")
	}

	other := int64(999)
	ok, _ = repo.HasCompletedBooking(ctx, 1, 7, &other)
	if ok {
		t.Fatal("unrelated booking id should not satisfy the gate")
	}
}
