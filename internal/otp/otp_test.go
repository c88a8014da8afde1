package otp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSender struct {
	phones []string
	codes  []string
	err    error
}

func (s *captureSender) Send(_ context.Context, phone, code string) error {
	if s.err != nil {
		return s.err
	}
	s.phones = append(s.phones, phone)
	s.codes = append(s.codes, code)
	return nil
}

func TestSendAndVerify(t *testing.T) {
	sender := &captureSender{}
	v := New(sender, Config{})

	token, err := v.Send(context.Background(), "09123456789")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Len(t, sender.codes, 1)
	code := sender.codes[0]
	require.Len(t, code, 4)

	assert.ErrorIs(t, v.Verify(token, "0000"), ErrMismatch)
	assert.NoError(t, v.Verify(token, code))
	// Session is consumed on success.
	assert.ErrorIs(t, v.Verify(token, code), ErrNoSession)
}

func TestVerifyNormalizesDigitGlyphs(t *testing.T) {
	sender := &captureSender{}
	v := New(sender, Config{})

	token, err := v.Send(context.Background(), "09123456789")
	require.NoError(t, err)

	persian := ""
	for _, r := range sender.codes[0] {
		persian += string(rune('۰') + rune(r-'0'))
	}
	assert.NoError(t, v.Verify(token, persian))
}

func TestResendInvalidatesPriorCode(t *testing.T) {
	sender := &captureSender{}
	v := New(sender, Config{})

	first, err := v.Send(context.Background(), "09123456789")
	require.NoError(t, err)
	second, err := v.Send(context.Background(), "09123456789")
	require.NoError(t, err)

	assert.ErrorIs(t, v.Verify(first, sender.codes[0]), ErrNoSession)
	assert.NoError(t, v.Verify(second, sender.codes[1]))
}

func TestDeliveryFailureCreatesNoSession(t *testing.T) {
	sender := &captureSender{err: errors.New("provider down")}
	v := New(sender, Config{})

	_, err := v.Send(context.Background(), "09123456789")
	assert.ErrorIs(t, err, ErrDelivery)
	assert.Empty(t, v.byToken)
	assert.Empty(t, v.byPhone)
}

func TestAttemptCap(t *testing.T) {
	sender := &captureSender{}
	v := New(sender, Config{MaxAttempts: 3})

	token, err := v.Send(context.Background(), "09123456789")
	require.NoError(t, err)

	assert.ErrorIs(t, v.Verify(token, "9999"), ErrMismatch)
	assert.ErrorIs(t, v.Verify(token, "9999"), ErrMismatch)
	// Third failed attempt exhausts the session.
	assert.ErrorIs(t, v.Verify(token, "9999"), ErrNoSession)
	assert.ErrorIs(t, v.Verify(token, sender.codes[0]), ErrNoSession)
}

func TestExpiry(t *testing.T) {
	sender := &captureSender{}
	v := New(sender, Config{TTL: time.Minute})

	token, err := v.Send(context.Background(), "09123456789")
	require.NoError(t, err)

	now := time.Now()
	v.now = func() time.Time { return now.Add(2 * time.Minute) }
	assert.ErrorIs(t, v.Verify(token, sender.codes[0]), ErrNoSession)
}
