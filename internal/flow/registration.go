package flow

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/maz-edu/sellersbot/core/logger"
	"github.com/maz-edu/sellersbot/internal/domain"
	"github.com/maz-edu/sellersbot/internal/otp"
	"github.com/maz-edu/sellersbot/internal/store"
)

type regState int

const (
	regAskName regState = iota + 1
	regAskPhone
	regAskOTP
)

type regData struct {
	name  string
	phone string
	token string
}

// Registration walks a seller through sign-up: Persian full name, mobile
// number, then an SMS one-time code. On success the seller row is upserted,
// so re-registration updates the existing profile.
type Registration struct {
	store    store.Store
	verifier *otp.Verifier
	log      *slog.Logger

	sessions *sessions[regState, regData]
}

// NewRegistration constructs the registration flow.
func NewRegistration(st store.Store, verifier *otp.Verifier) *Registration {
	return &Registration{
		store:    st,
		verifier: verifier,
		log:      logger.Component("flow.register"),
		sessions: newSessions[regState, regData](),
	}
}

// Active reports whether the user has a registration in progress.
func (r *Registration) Active(userID int64) bool {
	return r.sessions.active(userID)
}

// Start begins the conversation. Already-registered sellers are told so and
// no session is opened.
func (r *Registration) Start(ctx context.Context, ev Event) ([]Reply, error) {
	_, err := r.store.SellerByTelegramID(ctx, ev.UserID)
	switch {
	case err == nil:
		return []Reply{{Text: msgAlreadyRegistered}}, nil
	case !errors.Is(err, store.ErrSellerNotFound):
		return []Reply{{Text: msgInternal}}, err
	}

	r.sessions.put(ev.UserID, regAskName, regData{})
	return []Reply{{Text: msgAskName}}, nil
}

// Cancel aborts the conversation and returns the user to the welcome screen.
func (r *Registration) Cancel(userID int64) []Reply {
	r.sessions.clear(userID)
	return []Reply{
		{Text: msgCancelled, RemoveKeyboard: true},
		{Text: msgWelcome},
	}
}

// Handle advances the conversation with one text message. It must only be
// called while Active reports true.
func (r *Registration) Handle(ctx context.Context, ev Event) ([]Reply, error) {
	state, data, ok := r.sessions.get(ev.UserID)
	if !ok {
		return nil, nil
	}

	switch state {
	case regAskName:
		return r.handleName(ev, data)
	case regAskPhone:
		return r.handlePhone(ctx, ev, data)
	case regAskOTP:
		return r.handleOTP(ctx, ev, data)
	}
	return nil, nil
}

func (r *Registration) handleName(ev Event, data regData) ([]Reply, error) {
	name := strings.TrimSpace(ev.Text)
	if !domain.ValidSellerName(name) {
		return []Reply{{Text: msgBadName}}, nil
	}
	data.name = name
	r.sessions.put(ev.UserID, regAskPhone, data)
	return []Reply{{Text: msgAskPhone}}, nil
}

func (r *Registration) handlePhone(ctx context.Context, ev Event, data regData) ([]Reply, error) {
	phone := domain.NormalizeDigits(ev.Text)
	if !domain.ValidPhone(phone) {
		return []Reply{{Text: msgBadPhone}}, nil
	}

	token, err := r.verifier.Send(ctx, phone)
	if err != nil {
		// Terminal: the conversation ends, matching a failed SMS channel.
		r.sessions.clear(ev.UserID)
		r.log.Error("otp send failed",
			slog.String("event", "otp.send"),
			slog.Int64("user_id", ev.UserID),
			slog.String("err", err.Error()),
		)
		return []Reply{{Text: msgOTPSendFailed}}, nil
	}

	data.phone = phone
	data.token = token
	r.sessions.put(ev.UserID, regAskOTP, data)
	return []Reply{{Text: msgOTPSent}}, nil
}

func (r *Registration) handleOTP(ctx context.Context, ev Event, data regData) ([]Reply, error) {
	err := r.verifier.Verify(data.token, ev.Text)
	switch {
	case errors.Is(err, otp.ErrMismatch):
		return []Reply{{Text: msgBadOTP}}, nil
	case errors.Is(err, otp.ErrNoSession):
		r.sessions.clear(ev.UserID)
		return []Reply{{Text: msgOTPExpired}}, nil
	case err != nil:
		r.sessions.clear(ev.UserID)
		return []Reply{{Text: msgInternal}}, err
	}

	seller, err := r.store.UpsertSeller(ctx, domain.Seller{
		TelegramID: ev.UserID,
		Username:   ev.Username,
		Name:       data.name,
		Number:     data.phone,
	})
	if err != nil {
		r.sessions.clear(ev.UserID)
		return []Reply{{Text: msgInternal}}, err
	}

	r.sessions.clear(ev.UserID)
	r.log.Info("seller registered",
		slog.String("event", "seller.registered"),
		slog.Int64("user_id", ev.UserID),
		slog.Int64("seller_id", seller.ID),
	)
	return []Reply{
		{Text: msgRegistered},
		{Text: msgWelcome},
	}, nil
}
