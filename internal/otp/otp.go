// Package otp implements the phone verification used by seller registration:
// a short numeric code delivered over SMS and checked against the session it
// was issued for.
package otp

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/maz-edu/sellersbot/internal/domain"
)

var (
	// ErrDelivery indicates the SMS channel rejected the send. The attempt is
	// terminal; nothing is stored for the session.
	ErrDelivery = errors.New("one-time code delivery failed")

	// ErrMismatch indicates the submitted code does not equal the pending one.
	ErrMismatch = errors.New("one-time code mismatch")

	// ErrNoSession indicates there is no live code for the token: it was never
	// issued, expired, ran out of attempts, or was already consumed.
	ErrNoSession = errors.New("no pending one-time code")
)

// Sender delivers a generated code to a phone number.
type Sender interface {
	Send(ctx context.Context, phone, code string) error
}

// SenderFunc adapts a bare function to the Sender interface.
type SenderFunc func(ctx context.Context, phone, code string) error

// Send executes the underlying function.
func (f SenderFunc) Send(ctx context.Context, phone, code string) error {
	return f(ctx, phone, code)
}

// Config bounds the lifetime of issued codes.
type Config struct {
	TTL         time.Duration
	MaxAttempts int
}

type session struct {
	phone     string
	code      string
	expiresAt time.Time
	attempts  int
}

// Verifier issues 4-digit codes and verifies submissions against them.
// Each phone holds at most one live code; a new Send invalidates the prior
// session for that phone.
type Verifier struct {
	sender      Sender
	ttl         time.Duration
	maxAttempts int
	now         func() time.Time

	mu      sync.Mutex
	byToken map[string]*session
	byPhone map[string]string
}

// New constructs a Verifier. Zero config fields fall back to 5 minutes and
// 5 attempts.
func New(sender Sender, cfg Config) *Verifier {
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Minute
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	return &Verifier{
		sender:      sender,
		ttl:         cfg.TTL,
		maxAttempts: cfg.MaxAttempts,
		now:         time.Now,
		byToken:     make(map[string]*session),
		byPhone:     make(map[string]string),
	}
}

// Send generates a fresh code, delivers it to phone and returns the session
// token to verify against. On delivery failure no session is created.
func (v *Verifier) Send(ctx context.Context, phone string) (string, error) {
	code := fmt.Sprintf("%04d", 1000+rand.IntN(9000))
	if err := v.sender.Send(ctx, phone, code); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if prev, ok := v.byPhone[phone]; ok {
		delete(v.byToken, prev)
	}
	token := uuid.NewString()
	v.byToken[token] = &session{
		phone:     phone,
		code:      code,
		expiresAt: v.now().Add(v.ttl),
	}
	v.byPhone[phone] = token
	return token, nil
}

// Verify checks a submitted code against the session. Alternate digit glyphs
// are normalized before the exact-string compare. A nil return consumes the
// session; ErrMismatch leaves it live until the attempt cap or TTL is hit.
func (v *Verifier) Verify(token, submitted string) error {
	submitted = domain.NormalizeDigits(submitted)

	v.mu.Lock()
	defer v.mu.Unlock()

	sess, ok := v.byToken[token]
	if !ok {
		return ErrNoSession
	}
	if v.now().After(sess.expiresAt) {
		v.drop(token, sess)
		return ErrNoSession
	}

	sess.attempts++
	if sess.code == submitted {
		v.drop(token, sess)
		return nil
	}
	if sess.attempts >= v.maxAttempts {
		v.drop(token, sess)
		return ErrNoSession
	}
	return ErrMismatch
}

func (v *Verifier) drop(token string, sess *session) {
	delete(v.byToken, token)
	if v.byPhone[sess.phone] == token {
		delete(v.byPhone, sess.phone)
	}
}
