package cart

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/cache"
	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/domain"
	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/pricing"
)

const cartCacheTTL = 15 * time.Minute

var ErrVoucherNotFound = errors.New("voucher code not found")

// AddKind tags the outcome of an add-to-cart attempt.
type AddKind int

const (
	// AddOK means the item was merged into the cart.
	AddOK AddKind = iota
	// AddVendorConflict means the cart already belongs to another vendor
	// and nothing was changed; the caller must confirm the replacement.
	AddVendorConflict
)

// AddOutcome is the tagged result of AddProduct. On AddVendorConflict the
// cart is returned unchanged and Pending holds the item awaiting the
// caller's confirmation.
type AddOutcome struct {
	Kind    AddKind
	Cart    *domain.Cart
	Pending domain.CartItem
}

// VoucherSource looks up the voucher candidates for a vendor (vendor-scoped
// plus global codes). Satisfied by the catalog service.
type VoucherSource interface {
	VouchersForVendor(ctx context.Context, vendorID int64) ([]domain.Voucher, error)
}

type Service struct {
	repo     Repository
	store    cache.Store
	vouchers VoucherSource
	sfg      singleflight.Group // Prevents cache stampede
}

func NewService(repo Repository, store cache.Store, vouchers VoucherSource) *Service {
	return &Service{
		repo:     repo,
		store:    store,
		vouchers: vouchers,
	}
}

// Get returns the session's cart, an empty cart when none exists yet.
func (s *Service) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(sessionID, func() (interface{}, error) {
		var cached domain.Cart
		errCache := s.store.Get(ctx, cacheKey(sessionID), &cached)
		if errCache == nil {
			return &cached, nil
		}
		if !errors.Is(errCache, cache.ErrMiss) {
			log.Printf("cart cache get error: %v", errCache)
		}

		cart, errGet := s.repo.GetCart(ctx, sessionID)
		if errors.Is(errGet, ErrCartNotFound) {
			return &domain.Cart{
				SessionID: sessionID,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}, nil
		}
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			if errSet := s.store.Set(context.Background(), cacheKey(sessionID), cart, cartCacheTTL); errSet != nil {
				log.Printf("cart cache set error: %v", errSet)
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

// AddProduct merges a product into the session's cart. Carts hold a single
// vendor: adding across vendors yields AddVendorConflict and leaves the
// cart untouched unless replace is set, in which case the whole cart is
// swapped for the new item. Adding an existing product increments its qty.
func (s *Service) AddProduct(ctx context.Context, sessionID string, p domain.Product, replace bool) (AddOutcome, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return AddOutcome{}, err
	}

	item := domain.CartItem{
		ProductID:     p.ID,
		VendorID:      p.VendorID,
		Name:          p.Name,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		Qty:           1,
		Image:         p.Image,
	}

	if !cart.IsEmpty() && cart.VendorID() != p.VendorID {
		if !replace {
			return AddOutcome{Kind: AddVendorConflict, Cart: cart, Pending: item}, nil
		}
		// Confirmed vendor switch: the old cart is discarded entirely,
		// including any applied voucher.
		cart.Items = []domain.CartItem{item}
		cart.Voucher = nil
		if err := s.save(ctx, cart); err != nil {
			return AddOutcome{}, err
		}
		return AddOutcome{Kind: AddOK, Cart: cart}, nil
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == p.ID {
			cart.Items[i].Qty++
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, item)
	}

	if err := s.save(ctx, cart); err != nil {
		return AddOutcome{}, err
	}
	return AddOutcome{Kind: AddOK, Cart: cart}, nil
}

// ApplyVoucher looks the code up among the cart vendor's vouchers, validates
// it against the current subtotal and pins it to the cart. At most one
// voucher is applied; a new code replaces the previous one.
func (s *Service) ApplyVoucher(ctx context.Context, sessionID, code string) (*domain.Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrVoucherNotFound
	}

	candidates, err := s.vouchers.VouchersForVendor(ctx, cart.VendorID())
	if err != nil {
		return nil, fmt.Errorf("voucher lookup failed: %w", err)
	}

	var match *domain.Voucher
	for i := range candidates {
		if candidates[i].Code == code {
			match = &candidates[i]
			break
		}
	}
	if match == nil {
		return nil, ErrVoucherNotFound
	}

	if err := pricing.ValidateVoucher(match, pricing.Subtotal(cart.Items)); err != nil {
		return nil, err
	}

	cart.Voucher = match
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveVoucher discards the applied voucher, if any.
func (s *Service) RemoveVoucher(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.Voucher == nil {
		return cart, nil
	}

	cart.Voucher = nil
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear drops the cart and its voucher entirely.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	errDelete := s.repo.DeleteCart(ctx, sessionID)
	if errDelete != nil && !errors.Is(errDelete, ErrCartNotFound) {
		log.Printf("repo delete cart error: %v", errDelete)
		return errDelete
	}

	s.invalidateCache(sessionID)
	return nil
}

func (s *Service) save(ctx context.Context, cart *domain.Cart) error {
	if err := s.repo.UpsertCart(ctx, cart); err != nil {
		log.Printf("repo upsert cart error: %v", err)
		return err
	}

	s.invalidateCache(cart.SessionID)
	return nil
}

func (s *Service) invalidateCache(sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.store.Delete(ctx, cacheKey(sessionID)); err != nil {
		log.Printf("cart cache invalidate error: %v", err)
	}
}

func cacheKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}
