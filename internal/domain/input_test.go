package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDigits(t *testing.T) {
	assert.Equal(t, "09123456789", NormalizeDigits("۰۹۱۲۳۴۵۶۷۸۹"))
	assert.Equal(t, "0123456789", NormalizeDigits("٠١٢٣٤٥٦٧٨٩"))
	assert.Equal(t, "1234", NormalizeDigits(" 1234 "))
	assert.Equal(t, "ab12", NormalizeDigits("ab۱۲"))
}

func TestValidSellerName(t *testing.T) {
	assert.True(t, ValidSellerName("علی رضایی"))
	assert.True(t, ValidSellerName("  محمد حسینی  "))
	assert.False(t, ValidSellerName("علی"))                // too short
	assert.False(t, ValidSellerName("Ali Rezaei"))         // latin letters
	assert.False(t, ValidSellerName("علی رضایی 123"))      // digits
	assert.False(t, ValidSellerName(""))
}

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone("09123456789"))
	assert.False(t, ValidPhone("9123456789"))   // missing leading 0
	assert.False(t, ValidPhone("08123456789"))  // second digit not 9
	assert.False(t, ValidPhone("091234567890")) // too long
	assert.False(t, ValidPhone("0912345678"))   // too short
	assert.False(t, ValidPhone("0912345678a"))
}

func TestValidCodeShape(t *testing.T) {
	assert.True(t, ValidCodeShape("ABCDE"))
	assert.True(t, ValidCodeShape("abcdef"))
	assert.True(t, ValidCodeShape("12345"))
	assert.False(t, ValidCodeShape("ABC1"))   // too short
	assert.False(t, ValidCodeShape("AB12C"))  // mixed letters and digits
	assert.False(t, ValidCodeShape("abcd"))   // too short
	assert.False(t, ValidCodeShape("کدتخفیف")) // non-ASCII letters
}
