package flow

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/maz-edu/sellersbot/core/logger"
	"github.com/maz-edu/sellersbot/internal/domain"
	"github.com/maz-edu/sellersbot/internal/store"
)

type refState int

const (
	refAskCode refState = iota + 1
	refAskDiscount
	refAskProduct
	refAskInstallment
)

type refData struct {
	code     string
	discount int
	product  domain.Product
}

// Referral walks a registered seller through creating a referral code: the
// code string, the discount, the product category and the purchase type.
// Nothing is persisted until the final step commits the whole code.
type Referral struct {
	store store.Store
	codes *Codes
	log   *slog.Logger

	sessions *sessions[refState, refData]
}

// NewReferral constructs the code-creation flow.
func NewReferral(st store.Store, codes *Codes) *Referral {
	return &Referral{
		store:    st,
		codes:    codes,
		log:      logger.Component("flow.referral"),
		sessions: newSessions[refState, refData](),
	}
}

// Active reports whether the user has a code creation in progress.
func (r *Referral) Active(userID int64) bool {
	return r.sessions.active(userID)
}

// Start begins the conversation. Unregistered users are redirected to
// /register and no session is opened.
func (r *Referral) Start(ctx context.Context, ev Event) ([]Reply, error) {
	_, err := r.codes.requireSeller(ctx, ev.UserID)
	if errors.Is(err, ErrNotRegistered) {
		return []Reply{
			{Text: msgNotRegistered},
			{Text: msgWelcome},
		}, nil
	}
	if err != nil {
		return []Reply{{Text: msgInternal}}, err
	}

	r.sessions.put(ev.UserID, refAskCode, refData{})
	return []Reply{{Text: msgAskCode}}, nil
}

// Cancel aborts the conversation and returns the user to the welcome screen.
func (r *Referral) Cancel(userID int64) []Reply {
	r.sessions.clear(userID)
	return []Reply{
		{Text: msgCancelled, RemoveKeyboard: true},
		{Text: msgWelcome},
	}
}

// Handle advances the conversation with one text message. It must only be
// called while Active reports true.
func (r *Referral) Handle(ctx context.Context, ev Event) ([]Reply, error) {
	state, data, ok := r.sessions.get(ev.UserID)
	if !ok {
		return nil, nil
	}

	switch state {
	case refAskCode:
		return r.handleCode(ctx, ev, data)
	case refAskDiscount:
		return r.handleDiscount(ev, data)
	case refAskProduct:
		return r.handleProduct(ev, data)
	case refAskInstallment:
		return r.handleInstallment(ctx, ev, data)
	}
	return nil, nil
}

func (r *Referral) handleCode(ctx context.Context, ev Event, data refData) ([]Reply, error) {
	code := strings.TrimSpace(ev.Text)
	if len([]rune(code)) < 5 {
		return []Reply{{Text: msgCodeTooShort}}, nil
	}
	if !domain.ValidCodeShape(code) {
		return []Reply{{Text: msgCodeBadShape}}, nil
	}

	// Advisory pre-check; the unique constraint still decides at commit.
	exists, err := r.store.CodeExists(ctx, code)
	if err != nil {
		return []Reply{{Text: msgInternal}}, err
	}
	if exists {
		return []Reply{{Text: msgCodeDuplicate}}, nil
	}

	data.code = code
	r.sessions.put(ev.UserID, refAskDiscount, data)
	return []Reply{{Text: msgAskDiscount}}, nil
}

func (r *Referral) handleDiscount(ev Event, data refData) ([]Reply, error) {
	raw := domain.NormalizeDigits(ev.Text)
	discount, err := strconv.Atoi(raw)
	if err != nil || discount < 0 {
		return []Reply{{Text: msgDiscountNotNum}}, nil
	}
	if !domain.ValidDiscount(discount) {
		return []Reply{{Text: msgDiscountTooBig}}, nil
	}

	data.discount = discount
	r.sessions.put(ev.UserID, refAskProduct, data)
	return []Reply{{Text: msgAskProduct, Keyboard: productKeyboard()}}, nil
}

func (r *Referral) handleProduct(ev Event, data refData) ([]Reply, error) {
	product, ok := domain.ProductByLabel(strings.TrimSpace(ev.Text))
	if !ok {
		return []Reply{{Text: msgBadProduct}}, nil
	}
	if data.discount > product.MaxProductDiscount() {
		return []Reply{{Text: msgAlmasDiscountCap}}, nil
	}

	data.product = product
	r.sessions.put(ev.UserID, refAskInstallment, data)
	return []Reply{{
		Text:     msgAskInstallment,
		Keyboard: [][]string{{labelInstallment, labelCash}},
	}}, nil
}

func (r *Referral) handleInstallment(ctx context.Context, ev Event, data refData) ([]Reply, error) {
	installment := strings.TrimSpace(ev.Text) == labelInstallment
	if installment && !domain.InstallmentAllowed(data.product, data.discount) {
		return []Reply{{Text: msgBadInstallment}}, nil
	}

	// Re-resolve on commit: the seller row may have vanished mid-conversation.
	seller, err := r.codes.requireSeller(ctx, ev.UserID)
	if errors.Is(err, ErrNotRegistered) {
		r.sessions.clear(ev.UserID)
		return []Reply{
			{Text: msgNotRegistered, RemoveKeyboard: true},
			{Text: msgWelcome},
		}, nil
	}
	if err != nil {
		return []Reply{{Text: msgInternal}}, err
	}

	code, err := r.store.InsertCode(ctx, domain.ReferralCode{
		OwnerID:     seller.ID,
		Code:        data.code,
		Product:     data.product,
		Installment: installment,
		Discount:    data.discount,
	})
	if errors.Is(err, store.ErrDuplicateCode) {
		// Someone claimed the code since the pre-check. Keep the staged
		// discount and product, ask for a fresh code string.
		r.sessions.put(ev.UserID, refAskCode, data)
		return []Reply{
			{Text: msgCodeDuplicate, RemoveKeyboard: true},
			{Text: msgAskCode},
		}, nil
	}
	if err != nil {
		return []Reply{{Text: msgInternal}}, err
	}

	r.sessions.clear(ev.UserID)
	r.log.Info("code created",
		slog.String("event", "code.created"),
		slog.Int64("user_id", ev.UserID),
		slog.Int64("seller_id", seller.ID),
		slog.Int64("code_id", code.ID),
		slog.String("code", code.Code),
		slog.String("product", string(code.Product)),
		slog.Int("discount", code.Discount),
		slog.Bool("installment", code.Installment),
	)

	replies := []Reply{{Text: msgCodeAdded, RemoveKeyboard: true}}
	list, err := r.codes.List(ctx, ev.UserID, false)
	if err != nil {
		return replies, err
	}
	return append(replies, list...), nil
}

// productKeyboard lays the category labels out two per row, matching the
// fixed catalogue order.
func productKeyboard() [][]string {
	labels := domain.ProductLabels()
	rows := make([][]string, 0, (len(labels)+1)/2)
	for i := 0; i < len(labels); i += 2 {
		end := i + 2
		if end > len(labels) {
			end = len(labels)
		}
		rows = append(rows, labels[i:end])
	}
	return rows
}
