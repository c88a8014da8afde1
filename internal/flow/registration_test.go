package flow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maz-edu/sellersbot/internal/domain"
	"github.com/maz-edu/sellersbot/internal/otp"
	"github.com/maz-edu/sellersbot/internal/store"
)

type smsCapture struct {
	codes []string
	err   error
}

func (s *smsCapture) Send(_ context.Context, _, code string) error {
	if s.err != nil {
		return s.err
	}
	s.codes = append(s.codes, code)
	return nil
}

func regHarness(t *testing.T, otpCfg otp.Config) (*Registration, *store.Memory, *smsCapture) {
	t.Helper()
	st := store.NewMemory()
	sms := &smsCapture{}
	return NewRegistration(st, otp.New(sms, otpCfg)), st, sms
}

func texts(replies []Reply) []string {
	out := make([]string, len(replies))
	for i, r := range replies {
		out[i] = r.Text
	}
	return out
}

func TestRegistrationHappyPath(t *testing.T) {
	reg, st, sms := regHarness(t, otp.Config{})
	ctx := context.Background()
	ev := func(text string) Event {
		return Event{UserID: 42, Username: "seller42", Text: text}
	}

	replies, err := reg.Start(ctx, ev("/register"))
	require.NoError(t, err)
	assert.Equal(t, []string{msgAskName}, texts(replies))
	assert.True(t, reg.Active(42))

	// Latin letters are not a Persian name.
	replies, err = reg.Handle(ctx, ev("John Doe"))
	require.NoError(t, err)
	assert.Equal(t, []string{msgBadName}, texts(replies))

	replies, err = reg.Handle(ctx, ev("علی رضایی"))
	require.NoError(t, err)
	assert.Equal(t, []string{msgAskPhone}, texts(replies))

	replies, err = reg.Handle(ctx, ev("12345"))
	require.NoError(t, err)
	assert.Equal(t, []string{msgBadPhone}, texts(replies))

	// Persian keyboard digits are accepted.
	replies, err = reg.Handle(ctx, ev("۰۹۱۲۳۴۵۶۷۸۹"))
	require.NoError(t, err)
	assert.Equal(t, []string{msgOTPSent}, texts(replies))
	require.Len(t, sms.codes, 1)

	replies, err = reg.Handle(ctx, ev("0000"))
	require.NoError(t, err)
	assert.Equal(t, []string{msgBadOTP}, texts(replies))
	assert.True(t, reg.Active(42))

	replies, err = reg.Handle(ctx, ev(sms.codes[0]))
	require.NoError(t, err)
	assert.Equal(t, []string{msgRegistered, msgWelcome}, texts(replies))
	assert.False(t, reg.Active(42))

	seller, err := st.SellerByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "علی رضایی", seller.Name)
	assert.Equal(t, "09123456789", seller.Number)
	assert.Equal(t, "seller42", seller.Username)
}

func TestRegistrationAlreadyRegistered(t *testing.T) {
	reg, st, _ := regHarness(t, otp.Config{})
	ctx := context.Background()

	_, err := st.UpsertSeller(ctx, domain.Seller{TelegramID: 42, Name: "علی رضایی", Number: "09123456789"})
	require.NoError(t, err)

	replies, err := reg.Start(ctx, Event{UserID: 42})
	require.NoError(t, err)
	assert.Equal(t, []string{msgAlreadyRegistered}, texts(replies))
	assert.False(t, reg.Active(42))
}

func TestRegistrationCancel(t *testing.T) {
	reg, _, _ := regHarness(t, otp.Config{})
	ctx := context.Background()

	_, err := reg.Start(ctx, Event{UserID: 42})
	require.NoError(t, err)
	require.True(t, reg.Active(42))

	replies := reg.Cancel(42)
	assert.Equal(t, []string{msgCancelled, msgWelcome}, texts(replies))
	assert.False(t, reg.Active(42))
}

func TestRegistrationDeliveryFailureEndsConversation(t *testing.T) {
	reg, _, sms := regHarness(t, otp.Config{})
	sms.err = errors.New("provider down")
	ctx := context.Background()
	ev := func(text string) Event { return Event{UserID: 42, Text: text} }

	_, err := reg.Start(ctx, ev("/register"))
	require.NoError(t, err)
	_, err = reg.Handle(ctx, ev("علی رضایی"))
	require.NoError(t, err)

	replies, err := reg.Handle(ctx, ev("09123456789"))
	require.NoError(t, err)
	assert.Equal(t, []string{msgOTPSendFailed}, texts(replies))
	assert.False(t, reg.Active(42))
}

func TestRegistrationExhaustedCodeRestarts(t *testing.T) {
	reg, st, _ := regHarness(t, otp.Config{MaxAttempts: 1})
	ctx := context.Background()
	ev := func(text string) Event { return Event{UserID: 42, Text: text} }

	_, err := reg.Start(ctx, ev("/register"))
	require.NoError(t, err)
	_, err = reg.Handle(ctx, ev("علی رضایی"))
	require.NoError(t, err)
	_, err = reg.Handle(ctx, ev("09123456789"))
	require.NoError(t, err)

	// The single allowed attempt fails, killing the code session.
	replies, err := reg.Handle(ctx, ev("0000"))
	require.NoError(t, err)
	assert.Equal(t, []string{msgOTPExpired}, texts(replies))
	assert.False(t, reg.Active(42))

	_, err = st.SellerByTelegramID(ctx, 42)
	assert.ErrorIs(t, err, store.ErrSellerNotFound)
}
