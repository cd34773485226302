package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/domain"
)

var (
	ErrVendorNotFound  = errors.New("vendor not found")
	ErrProductNotFound = errors.New("product not found")
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	query := `
		SELECT id, name, category, address, whatsapp, lat, lng, open_time, close_time, image
		FROM vendors
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query vendors: %w", err)
	}
	defer rows.Close()

	var vendors []domain.Vendor
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}

func (r *Repository) GetVendor(ctx context.Context, id int64) (*domain.Vendor, error) {
	query := `
		SELECT id, name, category, address, whatsapp, lat, lng, open_time, close_time, image
		FROM vendors
		WHERE id = ?
	`

	row := r.db.QueryRowContext(ctx, query, id)
	v, err := scanVendor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVendorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Repository) CreateVendor(ctx context.Context, v *domain.Vendor) error {
	query := `
		INSERT INTO vendors (name, category, address, whatsapp, lat, lng, open_time, close_time, image)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	lat, lng := coordsColumns(v.Location)
	open, close := scheduleColumns(v.Schedule)
	res, err := r.db.ExecContext(ctx, query, v.Name, v.Category, v.Address, v.WhatsApp, lat, lng, open, close, v.Image)
	if err != nil {
		return fmt.Errorf("failed to insert vendor: %w", err)
	}

	v.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read vendor id: %w", err)
	}
	return nil
}

func (r *Repository) UpdateVendor(ctx context.Context, v *domain.Vendor) error {
	query := `
		UPDATE vendors
		SET name = ?, category = ?, address = ?, whatsapp = ?, lat = ?, lng = ?, open_time = ?, close_time = ?, image = ?
		WHERE id = ?
	`

	lat, lng := coordsColumns(v.Location)
	open, close := scheduleColumns(v.Schedule)
	res, err := r.db.ExecContext(ctx, query, v.Name, v.Category, v.Address, v.WhatsApp, lat, lng, open, close, v.Image, v.ID)
	if err != nil {
		return fmt.Errorf("failed to update vendor: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrVendorNotFound
	}
	return nil
}

func (r *Repository) DeleteVendor(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vendors WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vendor: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrVendorNotFound
	}
	return nil
}

func (r *Repository) ListProducts(ctx context.Context, vendorID int64) ([]domain.Product, error) {
	query := `
		SELECT id, vendor_id, name, price, discount_price, category, image, description
		FROM products
		WHERE vendor_id = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		var discount sql.NullFloat64
		if err := rows.Scan(&p.ID, &p.VendorID, &p.Name, &p.Price, &discount, &p.Category, &p.Image, &p.Description); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		if discount.Valid {
			p.DiscountPrice = &discount.Float64
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *Repository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, vendor_id, name, price, discount_price, category, image, description
		FROM products
		WHERE id = ?
	`

	var p domain.Product
	var discount sql.NullFloat64
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.VendorID, &p.Name, &p.Price, &discount, &p.Category, &p.Image, &p.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if discount.Valid {
		p.DiscountPrice = &discount.Float64
	}
	return &p, nil
}

func (r *Repository) CreateProduct(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (vendor_id, name, price, discount_price, category, image, description)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	res, err := r.db.ExecContext(ctx, query, p.VendorID, p.Name, p.Price, nullFloat(p.DiscountPrice), p.Category, p.Image, p.Description)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	p.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read product id: %w", err)
	}
	return nil
}

func (r *Repository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	query := `
		UPDATE products
		SET name = ?, price = ?, discount_price = ?, category = ?, image = ?, description = ?
		WHERE id = ?
	`

	res, err := r.db.ExecContext(ctx, query, p.Name, p.Price, nullFloat(p.DiscountPrice), p.Category, p.Image, p.Description, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

// ListVouchers returns the voucher candidates usable on a vendor's cart:
// codes scoped to that vendor plus global codes. Codes are stored and
// returned uppercase.
func (r *Repository) ListVouchers(ctx context.Context, vendorID int64) ([]domain.Voucher, error) {
	query := `
		SELECT code, type, value, min_purchase, max_discount, vendor_id
		FROM vouchers
		WHERE vendor_id = ? OR vendor_id IS NULL
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query vouchers: %w", err)
	}
	defer rows.Close()

	var vouchers []domain.Voucher
	for rows.Next() {
		var v domain.Voucher
		var maxDiscount sql.NullFloat64
		var vendor sql.NullInt64
		if err := rows.Scan(&v.Code, &v.Type, &v.Value, &v.MinPurchase, &maxDiscount, &vendor); err != nil {
			return nil, fmt.Errorf("failed to scan voucher: %w", err)
		}
		if maxDiscount.Valid {
			v.MaxDiscount = &maxDiscount.Float64
		}
		if vendor.Valid {
			v.VendorID = &vendor.Int64
		}
		vouchers = append(vouchers, v)
	}
	return vouchers, rows.Err()
}

func (r *Repository) CreateVoucher(ctx context.Context, v *domain.Voucher) error {
	query := `
		INSERT INTO vouchers (code, type, value, min_purchase, max_discount, vendor_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	var vendor sql.NullInt64
	if v.VendorID != nil {
		vendor = sql.NullInt64{Int64: *v.VendorID, Valid: true}
	}
	v.Code = strings.ToUpper(strings.TrimSpace(v.Code))
	if _, err := r.db.ExecContext(ctx, query, v.Code, v.Type, v.Value, v.MinPurchase, nullFloat(v.MaxDiscount), vendor); err != nil {
		return fmt.Errorf("failed to insert voucher: %w", err)
	}
	return nil
}

func (r *Repository) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	query := `
		SELECT id, name, description, lat, lng, image
		FROM destinations
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query destinations: %w", err)
	}
	defer rows.Close()

	var destinations []domain.Destination
	for rows.Next() {
		var d domain.Destination
		var lat, lng sql.NullFloat64
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &lat, &lng, &d.Image); err != nil {
			return nil, fmt.Errorf("failed to scan destination: %w", err)
		}
		if lat.Valid && lng.Valid {
			d.Location = &domain.Coordinates{Lat: lat.Float64, Lng: lng.Float64}
		}
		destinations = append(destinations, d)
	}
	return destinations, rows.Err()
}

func (r *Repository) Settings(ctx context.Context) ([]domain.Setting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	var settings []domain.Setting
	for rows.Next() {
		var s domain.Setting
		var value string
		if err := rows.Scan(&s.Key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		s.Value = json.RawMessage(value)
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

func (r *Repository) UpsertSetting(ctx context.Context, key string, value json.RawMessage) error {
	query := `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`

	if _, err := r.db.ExecContext(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("failed to upsert setting: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVendor(row rowScanner) (domain.Vendor, error) {
	var v domain.Vendor
	var lat, lng sql.NullFloat64
	var open, close string
	if err := row.Scan(&v.ID, &v.Name, &v.Category, &v.Address, &v.WhatsApp, &lat, &lng, &open, &close, &v.Image); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return v, err
		}
		return v, fmt.Errorf("failed to scan vendor: %w", err)
	}
	if lat.Valid && lng.Valid {
		v.Location = &domain.Coordinates{Lat: lat.Float64, Lng: lng.Float64}
	}
	if open != "" || close != "" {
		v.Schedule = &domain.Schedule{Open: open, Close: close}
	}
	return v, nil
}

func coordsColumns(c *domain.Coordinates) (lat, lng sql.NullFloat64) {
	if c == nil {
		return
	}
	return sql.NullFloat64{Float64: c.Lat, Valid: true}, sql.NullFloat64{Float64: c.Lng, Valid: true}
}

func scheduleColumns(s *domain.Schedule) (open, close string) {
	if s == nil {
		return "", ""
	}
	return s.Open, s.Close
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
