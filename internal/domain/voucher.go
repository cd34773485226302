package domain

type VoucherType string

const (
	VoucherFixed      VoucherType = "fixed"
	VoucherPercentage VoucherType = "percentage"
)

// Voucher is a discount code. VendorID nil means the code is global.
// MaxDiscount only applies to percentage vouchers; fixed values are uncapped.
type Voucher struct {
	Code        string      `json:"code" bson:"code"`
	Type        VoucherType `json:"type" bson:"type"`
	Value       float64     `json:"value" bson:"value"`
	MinPurchase float64     `json:"minPurchase" bson:"min_purchase"`
	MaxDiscount *float64    `json:"maxDiscount,omitempty" bson:"max_discount,omitempty"`
	VendorID    *int64      `json:"vendorId" bson:"vendor_id,omitempty"`
}
