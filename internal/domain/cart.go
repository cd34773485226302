package domain

import "time"

// CartItem is one line of a session cart. DiscountPrice, when present,
// overrides Price as the effective unit price.
type CartItem struct {
	ProductID     int64    `json:"productId" bson:"product_id"`
	VendorID      int64    `json:"vendorId" bson:"vendor_id"`
	Name          string   `json:"name" bson:"name"`
	Price         float64  `json:"price" bson:"price"`
	DiscountPrice *float64 `json:"discountPrice,omitempty" bson:"discount_price,omitempty"`
	Qty           int      `json:"qty" bson:"qty"`
	Image         string   `json:"image,omitempty" bson:"image,omitempty"`
}

// Cart holds the items of one storefront session. All items share the same
// vendor; the constraint is enforced at add time, not by this type.
type Cart struct {
	ID        string     `bson:"_id,omitempty" json:"id,omitempty"`
	SessionID string     `bson:"session_id" json:"sessionId"`
	Items     []CartItem `bson:"items" json:"items"`
	Voucher   *Voucher   `bson:"voucher,omitempty" json:"voucher,omitempty"`
	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updatedAt"`
}

// VendorID returns the vendor owning the cart, zero when the cart is empty.
func (c *Cart) VendorID() int64 {
	if c == nil || len(c.Items) == 0 {
		return 0
	}
	return c.Items[0].VendorID
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}
