package domain

import "time"

// Product is the catalogue category a referral code applies to.
type Product string

const (
	ProductAlmas  Product = "almas"
	ProductGrade5 Product = "5"
	ProductGrade6 Product = "6"
	ProductGrade7 Product = "7"
	ProductGrade8 Product = "8"
	ProductGrade9 Product = "9"
)

// Discount ceilings in tomans.
const (
	MaxDiscount      = 1_500_000
	MaxAlmasDiscount = 1_000_000
)

// productEntry ties the Telegram keyboard label to the stored value.
// Keeping one ordered table avoids drift between what is shown, what is
// validated and what is persisted.
type productEntry struct {
	Label   string
	Product Product
}

var productTable = []productEntry{
	{"محصولات الماس", ProductAlmas},
	{"پایه 5ام", ProductGrade5},
	{"پایه 6ام", ProductGrade6},
	{"پایه 7ام", ProductGrade7},
	{"پایه 8ام", ProductGrade8},
	{"پایه 9ام", ProductGrade9},
}

// ProductByLabel resolves a keyboard label to its product category.
func ProductByLabel(label string) (Product, bool) {
	for _, e := range productTable {
		if e.Label == label {
			return e.Product, true
		}
	}
	return "", false
}

// Label returns the user-facing label of the product category.
func (p Product) Label() string {
	for _, e := range productTable {
		if e.Product == p {
			return e.Label
		}
	}
	return string(p)
}

// Valid reports whether p is one of the fixed categories.
func (p Product) Valid() bool {
	for _, e := range productTable {
		if e.Product == p {
			return true
		}
	}
	return false
}

// ProductLabels returns all labels in keyboard order.
func ProductLabels() []string {
	labels := make([]string, len(productTable))
	for i, e := range productTable {
		labels[i] = e.Label
	}
	return labels
}

// MaxProductDiscount returns the discount ceiling for a category.
// The premium category caps lower than the rest.
func (p Product) MaxProductDiscount() int {
	if p == ProductAlmas {
		return MaxAlmasDiscount
	}
	return MaxDiscount
}

// ValidDiscount reports whether d is inside the global discount range.
func ValidDiscount(d int) bool {
	return d >= 0 && d <= MaxDiscount
}

// InstallmentAllowed reports whether a code may be flagged as installment:
// premium product only, and only under the premium discount ceiling.
func InstallmentAllowed(p Product, discount int) bool {
	return p == ProductAlmas && discount <= MaxAlmasDiscount
}

// ReferralCode is a discount code owned by exactly one seller.
// The code string is globally unique; uniqueness is enforced by the store,
// not only by the conversational pre-check.
type ReferralCode struct {
	ID          int64     `db:"id"`
	OwnerID     int64     `db:"owner_id"`
	Code        string    `db:"code"`
	Product     Product   `db:"product"`
	Installment bool      `db:"installment"`
	Discount    int       `db:"discount"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
