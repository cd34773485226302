package catalog

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/cache"
	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/domain"
)

const (
	vendorsCacheKey = "catalog:vendors"
	vendorsCacheTTL = 5 * time.Minute
)

// Service fronts the catalog repository with a short-TTL response cache for
// the hot vendor listing. Write paths invalidate the cache.
type Service struct {
	repo  *Repository
	store cache.Store
	sfg   singleflight.Group // Prevents cache stampede
}

func NewService(repo *Repository, store cache.Store) *Service {
	return &Service{
		repo:  repo,
		store: store,
	}
}

// Vendors returns the vendor list, served from cache when fresh.
func (s *Service) Vendors(ctx context.Context) ([]domain.Vendor, error) {
	v, err, _ := s.sfg.Do(vendorsCacheKey, func() (interface{}, error) {
		var cached []domain.Vendor
		errCache := s.store.Get(ctx, vendorsCacheKey, &cached)
		if errCache == nil {
			return cached, nil
		}
		if !errors.Is(errCache, cache.ErrMiss) {
			log.Printf("vendors cache get error: %v", errCache)
		}

		vendors, errList := s.repo.ListVendors(ctx)
		if errList != nil {
			return nil, errList
		}

		go func() {
			if errSet := s.store.Set(context.Background(), vendorsCacheKey, vendors, vendorsCacheTTL); errSet != nil {
				log.Printf("vendors cache set error: %v", errSet)
			}
		}()

		return vendors, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]domain.Vendor), nil
}

func (s *Service) Vendor(ctx context.Context, id int64) (*domain.Vendor, error) {
	return s.repo.GetVendor(ctx, id)
}

func (s *Service) CreateVendor(ctx context.Context, v *domain.Vendor) error {
	if err := s.repo.CreateVendor(ctx, v); err != nil {
		return err
	}
	s.invalidateVendors()
	return nil
}

func (s *Service) UpdateVendor(ctx context.Context, v *domain.Vendor) error {
	if err := s.repo.UpdateVendor(ctx, v); err != nil {
		return err
	}
	s.invalidateVendors()
	return nil
}

func (s *Service) DeleteVendor(ctx context.Context, id int64) error {
	if err := s.repo.DeleteVendor(ctx, id); err != nil {
		return err
	}
	s.invalidateVendors()
	return nil
}

func (s *Service) Products(ctx context.Context, vendorID int64) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx, vendorID)
}

func (s *Service) Product(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) CreateProduct(ctx context.Context, p *domain.Product) error {
	return s.repo.CreateProduct(ctx, p)
}

func (s *Service) UpdateProduct(ctx context.Context, p *domain.Product) error {
	return s.repo.UpdateProduct(ctx, p)
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.repo.DeleteProduct(ctx, id)
}

// VouchersForVendor satisfies the cart service's voucher source. The lookup
// hits the repository once per apply attempt.
func (s *Service) VouchersForVendor(ctx context.Context, vendorID int64) ([]domain.Voucher, error) {
	return s.repo.ListVouchers(ctx, vendorID)
}

func (s *Service) CreateVoucher(ctx context.Context, v *domain.Voucher) error {
	return s.repo.CreateVoucher(ctx, v)
}

func (s *Service) Destinations(ctx context.Context) ([]domain.Destination, error) {
	return s.repo.ListDestinations(ctx)
}

func (s *Service) Settings(ctx context.Context) ([]domain.Setting, error) {
	return s.repo.Settings(ctx)
}

func (s *Service) UpsertSetting(ctx context.Context, setting domain.Setting) error {
	return s.repo.UpsertSetting(ctx, setting.Key, setting.Value)
}

func (s *Service) invalidateVendors() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.store.Delete(ctx, vendorsCacheKey); err != nil {
		log.Printf("vendors cache invalidate error: %v", err)
	}
}
