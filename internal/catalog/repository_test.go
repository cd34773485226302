package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/domain"
	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/storage"
)

func setupTestDB(t *testing.T) *Repository {
	// Use in-memory database for tests
	db, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, storage.RunMigrations(db, "../../migrations"))

	return NewRepository(db)
}

func seedVendor(t *testing.T, repo *Repository, name string, loc *domain.Coordinates) *domain.Vendor {
	v := &domain.Vendor{
		Name:     name,
		Category: "kuliner",
		Address:  "Jl. Melati 1",
		WhatsApp: "0812-3456-7890",
		Location: loc,
	}
	require.NoError(t, repo.CreateVendor(context.Background(), v))
	return v
}

func TestVendorCRUD(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	v := seedVendor(t, repo, "Warung Bu Sri", &domain.Coordinates{Lat: -6.2, Lng: 106.8})
	require.NotZero(t, v.ID)

	got, err := repo.GetVendor(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Warung Bu Sri", got.Name)
	require.NotNil(t, got.Location)
	assert.InDelta(t, -6.2, got.Location.Lat, 1e-9)

	got.Name = "Warung Bu Sri 2"
	require.NoError(t, repo.UpdateVendor(ctx, got))

	vendors, err := repo.ListVendors(ctx)
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	assert.Equal(t, "Warung Bu Sri 2", vendors[0].Name)

	require.NoError(t, repo.DeleteVendor(ctx, v.ID))
	_, err = repo.GetVendor(ctx, v.ID)
	assert.ErrorIs(t, err, ErrVendorNotFound)
}

func TestGetVendor_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetVendor(context.Background(), 999)
	assert.ErrorIs(t, err, ErrVendorNotFound)
}

func TestVendorWithoutLocation(t *testing.T) {
	repo := setupTestDB(t)

	v := seedVendor(t, repo, "Keliling", nil)
	got, err := repo.GetVendor(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Location)

	_, _, ok := got.Position()
	assert.False(t, ok)
}

func TestProductCRUD(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	v := seedVendor(t, repo, "Warung Bu Sri", nil)

	discount := 12000.0
	p := &domain.Product{
		VendorID:      v.ID,
		Name:          "Nasi Goreng",
		Price:         15000,
		DiscountPrice: &discount,
	}
	require.NoError(t, repo.CreateProduct(ctx, p))
	require.NotZero(t, p.ID)

	got, err := repo.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DiscountPrice)
	assert.Equal(t, 12000.0, *got.DiscountPrice)

	got.DiscountPrice = nil
	got.Price = 16000
	require.NoError(t, repo.UpdateProduct(ctx, got))

	products, err := repo.ListProducts(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Nil(t, products[0].DiscountPrice)
	assert.Equal(t, 16000.0, products[0].Price)

	require.NoError(t, repo.DeleteProduct(ctx, p.ID))
	_, err = repo.GetProduct(ctx, p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestListVouchers_VendorScopedPlusGlobal(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	v1 := seedVendor(t, repo, "Warung A", nil)
	v2 := seedVendor(t, repo, "Warung B", nil)

	maxDiscount := 3000.0
	require.NoError(t, repo.CreateVoucher(ctx, &domain.Voucher{
		Code: "hemat5", Type: domain.VoucherFixed, Value: 5000, MinPurchase: 20000, VendorID: &v1.ID,
	}))
	require.NoError(t, repo.CreateVoucher(ctx, &domain.Voucher{
		Code: "DISKON50", Type: domain.VoucherPercentage, Value: 50, MaxDiscount: &maxDiscount,
	}))
	require.NoError(t, repo.CreateVoucher(ctx, &domain.Voucher{
		Code: "LAIN", Type: domain.VoucherFixed, Value: 1000, VendorID: &v2.ID,
	}))

	vouchers, err := repo.ListVouchers(ctx, v1.ID)
	require.NoError(t, err)
	require.Len(t, vouchers, 2)
	// codes are normalized to uppercase on insert
	assert.Equal(t, "HEMAT5", vouchers[0].Code)
	assert.Equal(t, "DISKON50", vouchers[1].Code)
	assert.Nil(t, vouchers[1].VendorID)
	require.NotNil(t, vouchers[1].MaxDiscount)
	assert.Equal(t, 3000.0, *vouchers[1].MaxDiscount)
}

func TestDestinations(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO destinations (name, description, lat, lng) VALUES
		('Alun-Alun', 'pusat kota', -6.21, 106.81),
		('Pasar Lama', 'kuliner malam', NULL, NULL)
	`)
	require.NoError(t, err)

	destinations, err := repo.ListDestinations(ctx)
	require.NoError(t, err)
	require.Len(t, destinations, 2)
	assert.NotNil(t, destinations[0].Location)
	assert.Nil(t, destinations[1].Location)
}

func TestSettings_Upsert(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.UpsertSetting(ctx, "banner", json.RawMessage(`{"title":"Promo"}`)))
	require.NoError(t, repo.UpsertSetting(ctx, "banner", json.RawMessage(`{"title":"Promo Baru"}`)))

	settings, err := repo.Settings(ctx)
	require.NoError(t, err)
	require.Len(t, settings, 1)
	assert.JSONEq(t, `{"title":"Promo Baru"}`, string(settings[0].Value))
}
