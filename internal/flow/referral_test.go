package flow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maz-edu/sellersbot/internal/domain"
	"github.com/maz-edu/sellersbot/internal/store"
)

func refHarness(t *testing.T) (*Referral, *store.Memory, domain.Seller) {
	t.Helper()
	st := store.NewMemory()
	seller, err := st.UpsertSeller(context.Background(), domain.Seller{
		TelegramID: 42, Name: "علی رضایی", Number: "09123456789",
	})
	require.NoError(t, err)
	return NewReferral(st, NewCodes(st)), st, seller
}

func TestReferralRequiresRegistration(t *testing.T) {
	st := store.NewMemory()
	ref := NewReferral(st, NewCodes(st))

	replies, err := ref.Start(context.Background(), Event{UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, []string{msgNotRegistered, msgWelcome}, texts(replies))
	assert.False(t, ref.Active(7))
}

func TestReferralHappyPath(t *testing.T) {
	ref, st, seller := refHarness(t)
	ctx := context.Background()
	ev := func(text string) Event { return Event{UserID: 42, Text: text} }

	replies, err := ref.Start(ctx, ev("/add_code"))
	require.NoError(t, err)
	assert.Equal(t, []string{msgAskCode}, texts(replies))

	replies, err = ref.Handle(ctx, ev("abc"))
	require.NoError(t, err)
	assert.Equal(t, []string{msgCodeTooShort}, texts(replies))

	replies, err = ref.Handle(ctx, ev("abc12"))
	require.NoError(t, err)
	assert.Equal(t, []string{msgCodeBadShape}, texts(replies))

	replies, err = ref.Handle(ctx, ev("SUMMER"))
	require.NoError(t, err)
	assert.Equal(t, []string{msgAskDiscount}, texts(replies))

	replies, err = ref.Handle(ctx, ev("lots"))
	require.NoError(t, err)
	assert.Equal(t, []string{msgDiscountNotNum}, texts(replies))

	replies, err = ref.Handle(ctx, ev("2000000"))
	require.NoError(t, err)
	assert.Equal(t, []string{msgDiscountTooBig}, texts(replies))

	// Persian digits, 1.2M tomans.
	replies, err = ref.Handle(ctx, ev("۱۲۰۰۰۰۰"))
	require.NoError(t, err)
	require.Equal(t, []string{msgAskProduct}, texts(replies))
	assert.NotEmpty(t, replies[0].Keyboard)

	replies, err = ref.Handle(ctx, ev("چیز دیگر"))
	require.NoError(t, err)
	assert.Equal(t, []string{msgBadProduct}, texts(replies))

	// 1.2M exceeds the premium ceiling.
	replies, err = ref.Handle(ctx, ev("محصولات الماس"))
	require.NoError(t, err)
	assert.Equal(t, []string{msgAlmasDiscountCap}, texts(replies))

	replies, err = ref.Handle(ctx, ev("پایه 5ام"))
	require.NoError(t, err)
	assert.Equal(t, []string{msgAskInstallment}, texts(replies))

	// Installment needs the premium product.
	replies, err = ref.Handle(ctx, ev(labelInstallment))
	require.NoError(t, err)
	assert.Equal(t, []string{msgBadInstallment}, texts(replies))

	replies, err = ref.Handle(ctx, ev(labelCash))
	require.NoError(t, err)
	require.Len(t, replies, 2)
	assert.Equal(t, msgCodeAdded, replies[0].Text)
	assert.Equal(t, msgCodeList, replies[1].Text)
	require.Len(t, replies[1].Inline, 1)
	assert.Equal(t, "SUMMER", replies[1].Inline[0][0].Text)
	assert.False(t, ref.Active(42))

	codes, err := st.CodesByOwner(ctx, seller.ID)
	require.NoError(t, err)
	require.Len(t, codes, 1)
	assert.Equal(t, "SUMMER", codes[0].Code)
	assert.Equal(t, domain.ProductGrade5, codes[0].Product)
	assert.Equal(t, 1_200_000, codes[0].Discount)
	assert.False(t, codes[0].Installment)
}

func TestReferralInstallmentAllowedForPremium(t *testing.T) {
	ref, st, seller := refHarness(t)
	ctx := context.Background()
	ev := func(text string) Event { return Event{UserID: 42, Text: text} }

	_, err := ref.Start(ctx, ev("/add_code"))
	require.NoError(t, err)
	_, err = ref.Handle(ctx, ev("12345"))
	require.NoError(t, err)
	_, err = ref.Handle(ctx, ev("900000"))
	require.NoError(t, err)
	_, err = ref.Handle(ctx, ev("محصولات الماس"))
	require.NoError(t, err)

	replies, err := ref.Handle(ctx, ev(labelInstallment))
	require.NoError(t, err)
	assert.Equal(t, msgCodeAdded, replies[0].Text)

	codes, err := st.CodesByOwner(ctx, seller.ID)
	require.NoError(t, err)
	require.Len(t, codes, 1)
	assert.Equal(t, domain.ProductAlmas, codes[0].Product)
	assert.True(t, codes[0].Installment)
}

func TestReferralDuplicatePreCheck(t *testing.T) {
	ref, st, seller := refHarness(t)
	ctx := context.Background()
	ev := func(text string) Event { return Event{UserID: 42, Text: text} }

	_, err := st.InsertCode(ctx, domain.ReferralCode{
		OwnerID: seller.ID, Code: "TAKEN", Product: domain.ProductGrade5, Discount: 1,
	})
	require.NoError(t, err)

	_, err = ref.Start(ctx, ev("/add_code"))
	require.NoError(t, err)

	replies, err := ref.Handle(ctx, ev("TAKEN"))
	require.NoError(t, err)
	assert.Equal(t, []string{msgCodeDuplicate}, texts(replies))
	assert.True(t, ref.Active(42))
}

func TestReferralDuplicateAtCommit(t *testing.T) {
	ref, st, seller := refHarness(t)
	ctx := context.Background()
	ev := func(text string) Event { return Event{UserID: 42, Text: text} }

	_, err := ref.Start(ctx, ev("/add_code"))
	require.NoError(t, err)
	_, err = ref.Handle(ctx, ev("WINTER"))
	require.NoError(t, err)
	_, err = ref.Handle(ctx, ev("500000"))
	require.NoError(t, err)
	_, err = ref.Handle(ctx, ev("پایه 6ام"))
	require.NoError(t, err)

	// The code string is claimed while this conversation sits on the last
	// question; the unique constraint wins over the earlier pre-check.
	_, err = st.InsertCode(ctx, domain.ReferralCode{
		OwnerID: seller.ID, Code: "WINTER", Product: domain.ProductGrade5, Discount: 1,
	})
	require.NoError(t, err)

	replies, err := ref.Handle(ctx, ev(labelCash))
	require.NoError(t, err)
	assert.Equal(t, []string{msgCodeDuplicate, msgAskCode}, texts(replies))
	assert.True(t, ref.Active(42))

	// The conversation restarts from the code question.
	replies, err = ref.Handle(ctx, ev("SPRING"))
	require.NoError(t, err)
	assert.Equal(t, []string{msgAskDiscount}, texts(replies))
}

func TestReferralCancel(t *testing.T) {
	ref, _, _ := refHarness(t)
	ctx := context.Background()

	_, err := ref.Start(ctx, Event{UserID: 42})
	require.NoError(t, err)
	require.True(t, ref.Active(42))

	replies := ref.Cancel(42)
	assert.Equal(t, []string{msgCancelled, msgWelcome}, texts(replies))
	assert.False(t, ref.Active(42))
}
