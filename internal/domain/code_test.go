package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductTableRoundTrip(t *testing.T) {
	labels := ProductLabels()
	require.Len(t, labels, 6)
	for _, label := range labels {
		p, ok := ProductByLabel(label)
		require.True(t, ok, "label %q", label)
		assert.True(t, p.Valid())
		assert.Equal(t, label, p.Label())
	}
}

func TestProductByLabelUnknown(t *testing.T) {
	_, ok := ProductByLabel("محصولات طلا")
	assert.False(t, ok)
	assert.False(t, Product("gold").Valid())
}

func TestValidDiscount(t *testing.T) {
	assert.True(t, ValidDiscount(0))
	assert.True(t, ValidDiscount(1_500_000))
	assert.False(t, ValidDiscount(1_500_001))
	assert.False(t, ValidDiscount(-1))
}

func TestMaxProductDiscount(t *testing.T) {
	assert.Equal(t, 1_000_000, ProductAlmas.MaxProductDiscount())
	assert.Equal(t, 1_500_000, ProductGrade5.MaxProductDiscount())
	assert.Equal(t, 1_500_000, ProductGrade9.MaxProductDiscount())
}

func TestInstallmentAllowed(t *testing.T) {
	cases := []struct {
		name     string
		product  Product
		discount int
		want     bool
	}{
		{"almas under cap", ProductAlmas, 1_000_000, true},
		{"almas over cap", ProductAlmas, 1_000_001, false},
		{"grade5 under cap", ProductGrade5, 500_000, false},
		{"grade9 zero", ProductGrade9, 0, false},
		{"almas zero", ProductAlmas, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, InstallmentAllowed(tc.product, tc.discount))
		})
	}
}
