package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maz-edu/sellersbot/internal/domain"
)

func TestMemoryUpsertSeller(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	created, err := m.UpsertSeller(ctx, domain.Seller{
		TelegramID: 100, Name: "علی رضایی", Username: "ali", Number: "09123456789",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	// Same telegram id updates in place instead of inserting.
	updated, err := m.UpsertSeller(ctx, domain.Seller{
		TelegramID: 100, Name: "علی محمدی", Username: "ali", Number: "09120000000",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "علی محمدی", updated.Name)
	assert.Equal(t, "09120000000", updated.Number)

	got, err := m.SellerByTelegramID(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, updated.ID, got.ID)

	byID, err := m.SellerByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "علی محمدی", byID.Name)

	_, err = m.SellerByTelegramID(ctx, 101)
	assert.ErrorIs(t, err, ErrSellerNotFound)
	_, err = m.SellerByID(ctx, 999)
	assert.ErrorIs(t, err, ErrSellerNotFound)
}

func TestMemoryCodeUniqueness(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	seller, err := m.UpsertSeller(ctx, domain.Seller{TelegramID: 1, Name: "ن", Number: "09120000001"})
	require.NoError(t, err)

	code := domain.ReferralCode{OwnerID: seller.ID, Code: "ABCDE", Product: domain.ProductGrade5, Discount: 100_000}
	saved, err := m.InsertCode(ctx, code)
	require.NoError(t, err)
	require.NotZero(t, saved.ID)

	_, err = m.InsertCode(ctx, code)
	assert.ErrorIs(t, err, ErrDuplicateCode)

	// Exact-match only: a different case is a different code.
	_, err = m.InsertCode(ctx, domain.ReferralCode{OwnerID: seller.ID, Code: "abcde", Product: domain.ProductGrade5})
	assert.NoError(t, err)

	exists, err := m.CodeExists(ctx, "ABCDE")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = m.CodeExists(ctx, "ABCDEF")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryDeleteAndList(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	seller, err := m.UpsertSeller(ctx, domain.Seller{TelegramID: 1, Name: "ن", Number: "09120000001"})
	require.NoError(t, err)

	first, err := m.InsertCode(ctx, domain.ReferralCode{OwnerID: seller.ID, Code: "CODEA", Product: domain.ProductAlmas})
	require.NoError(t, err)
	second, err := m.InsertCode(ctx, domain.ReferralCode{OwnerID: seller.ID, Code: "CODEB", Product: domain.ProductGrade6})
	require.NoError(t, err)

	codes, err := m.CodesByOwner(ctx, seller.ID)
	require.NoError(t, err)
	require.Len(t, codes, 2)
	assert.Equal(t, second.ID, codes[0].ID) // newest first

	require.NoError(t, m.DeleteCode(ctx, first.ID))
	assert.ErrorIs(t, m.DeleteCode(ctx, first.ID), ErrCodeNotFound)

	codes, err = m.CodesByOwner(ctx, seller.ID)
	require.NoError(t, err)
	require.Len(t, codes, 1)
	assert.Equal(t, "CODEB", codes[0].Code)

	_, err = m.CodeByID(ctx, first.ID)
	assert.ErrorIs(t, err, ErrCodeNotFound)
}
