package cart

import (
	"context"
	"errors"

	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/domain"
)

var ErrCartNotFound = errors.New("cart not found")

// Repository defines the interface for cart data operations.
// Consumers define this interface, not the MongoDB implementation.
type Repository interface {
	GetCart(ctx context.Context, sessionID string) (*domain.Cart, error)
	UpsertCart(ctx context.Context, cart *domain.Cart) error
	DeleteCart(ctx context.Context, sessionID string) error
}
